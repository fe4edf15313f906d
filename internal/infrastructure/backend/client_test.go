package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := TokenFunc(func() (string, error) { return "tok-123", nil })
	return NewClient(srv.URL, 5*time.Second, tokens, zerolog.Nop()), srv
}

func TestClient_LoginParsesSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/authenticate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("username") != "amina@example.com" || r.URL.Query().Get("password") != "s3cret" {
			t.Errorf("credentials missing from query: %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"userInfo":{"id":7,"email":"amina@example.com","nom":"K","prenom":"Amina","role":"CLIENT"},"token":"tok-123"}}`))
	}))

	session, err := client.Login(context.Background(), "amina@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.UserID != "7" || session.Token != "tok-123" || session.Role != domain.RoleClient {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.DisplayName != "Amina K" {
		t.Fatalf("unexpected display name %q", session.DisplayName)
	}
}

func TestClient_LoginRejectedCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad credentials"}`))
	}))

	_, err := client.Login(context.Background(), "amina@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_LoginMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))

	if _, err := client.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatalf("expected error for missing token")
	}
}

func TestClient_FetchCartFlattensAndAuthenticates(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/paniers/client/liste/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing request id")
		}
		w.Write([]byte(`{"status":"OK","data":[{"id":42,"clientId":7,"produits":[
			{"idProduit":1,"nomProduit":"Argan oil","prixUnitaire":10,"quantite":2,"dateAjout":"2026-08-01T10:00:00Z","nomVendeur":"Atlas Coop","image":"/img/1.png"},
			{"idProduit":2,"nomProduit":"Mint tea","prixUnitaire":5,"quantite":1,"dateAjout":"2026-08-02T09:00:00Z","nomVendeur":"Souk Brothers","image":"/img/2.png"}
		]}]}`))
	}))

	snap, err := client.FetchCart(context.Background(), "7")
	if err != nil {
		t.Fatalf("fetch cart failed: %v", err)
	}
	if snap.CartID != "42" || snap.ClientID != "7" || len(snap.Lines) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	first := snap.Lines[0]
	if first.ProductID != "1" || first.Name != "Argan oil" || first.UnitPrice != 10 || first.Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", first)
	}
	if first.VendorName != "Atlas Coop" || first.ImagePath != "/img/1.png" {
		t.Fatalf("vendor fields lost in flattening: %+v", first)
	}
	if snap.Subtotal() != 25 {
		t.Fatalf("expected subtotal 25, got %v", snap.Subtotal())
	}
}

func TestClient_FetchCartNoCartYet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","data":[]}`))
	}))

	snap, err := client.FetchCart(context.Background(), "7")
	if err != nil {
		t.Fatalf("fetch cart failed: %v", err)
	}
	if snap.CartID != "" || len(snap.Lines) != 0 || snap.ClientID != "7" {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestClient_UpdateCartSendsFullLineList(t *testing.T) {
	var received struct {
		ID       string `json:"id"`
		ClientID string `json:"clientId"`
		Produits []struct {
			IDProduit string `json:"idProduit"`
			Quantite  int    `json:"quantite"`
		} `json:"produits"`
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/paniers/client/update" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode update body: %v", err)
		}
		w.Write([]byte(`{"status":"OK","data":{"id":42,"clientId":7,"produits":[
			{"idProduit":1,"nomProduit":"Argan oil","prixUnitaire":10,"quantite":1,"dateAjout":"2026-08-01T10:00:00Z","nomVendeur":"Atlas Coop","image":"/img/1.png"}
		]}}`))
	}))

	update := ports.CartUpdate{
		CartID:   "42",
		ClientID: "7",
		Lines: []domain.CartLine{
			{ProductID: "1", Quantity: 1, AddedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
			{ProductID: "2", Quantity: 3, AddedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)},
		},
	}
	snap, err := client.UpdateCart(context.Background(), update)
	if err != nil {
		t.Fatalf("update cart failed: %v", err)
	}

	if received.ID != "42" || received.ClientID != "7" || len(received.Produits) != 2 {
		t.Fatalf("unexpected wire payload: %+v", received)
	}
	if received.Produits[0].IDProduit != "1" || received.Produits[0].Quantite != 1 {
		t.Fatalf("unexpected first wire line: %+v", received.Produits[0])
	}
	if snap.CartID != "42" || len(snap.Lines) != 1 || snap.Lines[0].Quantity != 1 {
		t.Fatalf("server cart not adopted: %+v", snap)
	}
}

func TestClient_DeleteCart(t *testing.T) {
	var path, method string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		w.Write([]byte(`{"status":"OK"}`))
	}))

	if err := client.DeleteCart(context.Background(), "42"); err != nil {
		t.Fatalf("delete cart failed: %v", err)
	}
	if method != http.MethodDelete || path != "/api/paniers/client/delete/42" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
}

func TestClient_ServerErrorBecomesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"panier introuvable"}`))
	}))

	_, err := client.FetchCart(context.Background(), "7")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "panier introuvable" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_MalformedCartBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","data":"not-a-list"}`))
	}))

	if _, err := client.FetchCart(context.Background(), "7"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_SignupOmitsCoordinatesWithoutFix(t *testing.T) {
	var form map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/new" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		form = r.MultipartForm.Value
		w.WriteHeader(http.StatusCreated)
	}))

	in := ports.SignupInput{
		FirstName: "Amina",
		LastName:  "K",
		Email:     "amina@example.com",
		Password:  "s3cret",
		Phone:     "+212600000000",
		Role:      domain.RoleClient,
	}
	if err := client.Signup(context.Background(), in); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if got := form["email"]; len(got) != 1 || got[0] != "amina@example.com" {
		t.Fatalf("email field missing: %v", form)
	}
	if _, present := form["latitude"]; present {
		t.Fatalf("latitude must be omitted without a fix")
	}
}

func TestClient_SignupSendsCoordinatesWithFix(t *testing.T) {
	var form map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		form = r.MultipartForm.Value
		w.WriteHeader(http.StatusCreated)
	}))

	in := ports.SignupInput{
		FirstName: "Amina",
		LastName:  "K",
		Email:     "amina@example.com",
		Password:  "s3cret",
		Phone:     "+212600000000",
		Role:      domain.RoleDeliverer,
		Location:  &domain.LocationFix{Latitude: 33.57, Longitude: -7.59},
	}
	if err := client.Signup(context.Background(), in); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if got := form["latitude"]; len(got) != 1 || got[0] != "33.57" {
		t.Fatalf("latitude missing or wrong: %v", form["latitude"])
	}
	if got := form["role"]; len(got) != 1 || got[0] != "LIVREUR" {
		t.Fatalf("role missing or wrong: %v", form["role"])
	}
}

func TestClient_PlaceOrder(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/commandes/new" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode order body: %v", err)
		}
		w.Write([]byte(`{"status":"OK","data":{"id":77,"statut":"EN_ATTENTE","total":34.99,"dateCommande":"2026-08-28T12:00:00Z"}}`))
	}))

	result, err := client.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		ClientID:       "7",
		CartID:         "42",
		ShippingOption: "standard",
		Total:          34.99,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if result.OrderID != "77" {
		t.Fatalf("unexpected order id %q", result.OrderID)
	}
	if received["panierId"] != "42" || received["modeLivraison"] != "standard" {
		t.Fatalf("unexpected order payload: %v", received)
	}
}
