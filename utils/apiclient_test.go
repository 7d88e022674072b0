package utils_test

import (
	"context"
	"errors"
	"geonews/models"
	"geonews/utils"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*utils.APIClient, *utils.CredentialStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, _, _ := newTestStore(t)
	binder := utils.NewAuthBinder(store)
	return utils.NewAPIClient(server.URL, binder), store
}

func TestLoginParsesTokenVariants(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantToken string
	}{
		{
			name:      "access_token field",
			body:      `{"access_token":"tok1","token_type":"Bearer","user":{"id":1,"name":"A","email":"a@b.com","role":"admin"}}`,
			wantToken: "tok1",
		},
		{
			name:      "token field",
			body:      `{"token":"tok2","user":{"id":1,"name":"A","email":"a@b.com","role":"user"}}`,
			wantToken: "tok2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/login" || r.Method != http.MethodPost {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			})

			auth, err := api.Login(context.Background(), "a@b.com", "x")
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if auth.BearerToken() != tt.wantToken {
				t.Errorf("BearerToken() = %q, want %q", auth.BearerToken(), tt.wantToken)
			}
		})
	}
}

func TestLoginSurfacesAPIError(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Credenciales inválidas"}`))
	})

	_, err := api.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("Login() succeeded against a 401")
	}
	if err.Error() != "Credenciales inválidas" {
		t.Errorf("Login() error = %q, want the API message", err.Error())
	}
}

func TestLogoutMapsStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    bool
		wantExpiry bool
	}{
		{name: "2xx is success", status: http.StatusOK},
		{name: "401 maps to ErrUnauthorized", status: http.StatusUnauthorized, wantErr: true, wantExpiry: true},
		{name: "500 is a real error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(tt.status)
			})

			err := api.Logout(context.Background(), "Bearer tok1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Logout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantExpiry && !errors.Is(err, utils.ErrUnauthorized) {
				t.Errorf("Logout() error = %v, want ErrUnauthorized", err)
			}
			if gotAuth != "Bearer tok1" {
				t.Errorf("Authorization header = %q, want the captured header", gotAuth)
			}
		})
	}
}

func TestFetchNewsAcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "data envelope",
			body: `{"data":[{"id":1,"title":"t","content":"c","author":{"id":1,"name":"A"}}]}`,
		},
		{
			name: "bare array",
			body: `[{"id":1,"title":"t","content":"c","author":{"id":1,"name":"A"}}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			})

			news, err := api.FetchNews(context.Background(), "sid-1")
			if err != nil {
				t.Fatalf("FetchNews() error = %v", err)
			}
			if len(news) != 1 || news[0].Title != "t" {
				t.Errorf("FetchNews() = %+v, want one item titled t", news)
			}
		})
	}
}

func TestAuthenticatedRequestsCarryHeader(t *testing.T) {
	var gotAuth string
	api, store := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	// Session saved but binder never refreshed: the dispatch-time fallback
	// must still produce the header.
	if err := store.Save(context.Background(), "sid-1", testSession("admin"), true); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := api.FetchNews(context.Background(), "sid-1"); err != nil {
		t.Fatalf("FetchNews() error = %v", err)
	}
	if gotAuth != "Bearer tok1" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer tok1")
	}
}

func TestFetchNews401(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.FetchNews(context.Background(), "sid-1")
	if !errors.Is(err, utils.ErrUnauthorized) {
		t.Errorf("FetchNews() error = %v, want ErrUnauthorized", err)
	}
}

func TestCreateNewsMultipart(t *testing.T) {
	var gotMethod, gotOverride, gotTitle, gotPersonRecord string
	var hadImage bool
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("remote could not parse multipart: %v", err)
		}
		gotOverride = r.FormValue("_method")
		gotTitle = r.FormValue("title")
		gotPersonRecord = r.FormValue("person_record_id")
		_, _, err := r.FormFile("image")
		hadImage = err == nil
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":7,"title":"t","content":"c","author":{"id":1,"name":"A"}}}`))
	})

	prid := "3"
	form := models.NewsForm{
		Title:          "t",
		Content:        "c",
		PersonRecordID: &prid,
		ImageName:      "a.png",
		Image:          []byte("png-bytes"),
	}
	item, err := api.CreateNews(context.Background(), "sid-1", form)
	if err != nil {
		t.Fatalf("CreateNews() error = %v", err)
	}

	if gotMethod != http.MethodPost || gotOverride != "" {
		t.Errorf("create used %s with override %q, want plain POST", gotMethod, gotOverride)
	}
	if gotTitle != "t" || gotPersonRecord != "3" || !hadImage {
		t.Errorf("create form = title %q, person_record_id %q, image %v", gotTitle, gotPersonRecord, hadImage)
	}
	if item.ID != 7 {
		t.Errorf("CreateNews() id = %d, want 7", item.ID)
	}
}

func TestUpdateNewsTunnelsPut(t *testing.T) {
	var gotOverride, gotAddress string
	var addressPresent bool
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("remote could not parse multipart: %v", err)
		}
		gotOverride = r.FormValue("_method")
		values, ok := r.MultipartForm.Value["address_id"]
		addressPresent = ok
		if ok && len(values) > 0 {
			gotAddress = values[0]
		}
		w.Write([]byte(`{"id":7,"title":"t","content":"c","author":{"id":1,"name":"A"}}`))
	})

	// Empty string disassociates the address.
	empty := ""
	form := models.NewsForm{Title: "t", Content: "c", AddressID: &empty}
	if _, err := api.UpdateNews(context.Background(), "sid-1", 7, form); err != nil {
		t.Fatalf("UpdateNews() error = %v", err)
	}

	if gotOverride != "PUT" {
		t.Errorf("_method = %q, want PUT", gotOverride)
	}
	if !addressPresent || gotAddress != "" {
		t.Errorf("address_id present=%v value=%q, want an empty field", addressPresent, gotAddress)
	}
}

func TestDeleteNews(t *testing.T) {
	var gotMethod, gotPath string
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := api.DeleteNews(context.Background(), "sid-1", 7); err != nil {
		t.Fatalf("DeleteNews() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/noticias/7" {
		t.Errorf("DeleteNews() sent %s %s, want DELETE /noticias/7", gotMethod, gotPath)
	}
}
