package twilioclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendSMS(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Accounts/AC123/Messages.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "token" {
			t.Errorf("unexpected auth %s/%s", user, pass)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"From": r.PostFormValue("From"),
			"To":   r.PostFormValue("To"),
			"Body": r.PostFormValue("Body"),
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer srv.Close()

	client, err := New(Config{
		BaseURL:    srv.URL,
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+12313837782",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.SendSMS(context.Background(), "+919876543210", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotForm["To"] != "+919876543210" || gotForm["From"] != "+12313837782" || gotForm["Body"] != "hello" {
		t.Errorf("unexpected form values: %v", gotForm)
	}
}

func TestSendSMSErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number"}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, AccountSID: "AC123", AuthToken: "token"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.SendSMS(context.Background(), "bogus", "hello")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(Config{AuthToken: "t"}); err == nil {
		t.Error("expected error without account SID")
	}
	if _, err := New(Config{AccountSID: "AC1"}); err == nil {
		t.Error("expected error without auth token")
	}
}
