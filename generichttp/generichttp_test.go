package generichttp_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"

	"github.com/spinlab/odmr/generichttp"
	"github.com/spinlab/odmr/server"
)

func TestSubMuxSanitize(t *testing.T) {
	cases := map[string]string{
		"odmr/siggen":    "/odmr/siggen",
		"/odmr/siggen":   "/odmr/siggen",
		"/odmr/siggen/":  "/odmr/siggen",
		"/odmr/siggen/*": "/odmr/siggen",
	}
	for input, expected := range cases {
		if out := generichttp.SubMuxSanitize(input); out != expected {
			t.Errorf("SubMuxSanitize(%q) = %q, expected %q", input, out, expected)
		}
	}
}

func TestRouteTableBindAndEndpoints(t *testing.T) {
	val := 0.
	rt := generichttp.RouteTable{
		{Method: http.MethodGet, Path: "/value"}:  generichttp.GetFloat(func() (float64, error) { return val, nil }),
		{Method: http.MethodPost, Path: "/value"}: generichttp.SetFloat(func(f float64) error { val = f; return nil }),
	}
	eps := rt.Endpoints()
	if len(eps) != 1 || eps[0] != "/value" {
		t.Errorf("expected deduplicated endpoint list [/value], got %v", eps)
	}

	r := chi.NewRouter()
	rt.Bind(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	body, _ := json.Marshal(server.FloatT{F64: 3.25})
	resp, err := http.Post(srv.URL+"/value", "application/json", bytes.NewReader(body))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("post failed: %v %v", err, resp)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/value")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	f := server.FloatT{}
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if f.F64 != 3.25 {
		t.Errorf("expected round-tripped value 3.25, got %g", f.F64)
	}
}

func TestSetFloatRejectsGarbage(t *testing.T) {
	h := generichttp.SetFloat(func(float64) error { return nil })
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/value", bytes.NewReader([]byte("not json")))
	h(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestSetFloatPropagatesDeviceError(t *testing.T) {
	boom := errors.New("out of range")
	h := generichttp.SetFloat(func(float64) error { return boom })
	w := httptest.NewRecorder()
	body, _ := json.Marshal(server.FloatT{F64: 1})
	r := httptest.NewRequest(http.MethodPost, "/value", bytes.NewReader(body))
	h(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for device error, got %d", w.Code)
	}
}

func TestSetBoolDispatch(t *testing.T) {
	state := false
	h := generichttp.SetBool(
		func() error { state = true; return nil },
		func() error { state = false; return nil },
	)
	for _, want := range []bool{true, false, true} {
		w := httptest.NewRecorder()
		body, _ := json.Marshal(server.BoolT{Bool: want})
		r := httptest.NewRequest(http.MethodPost, "/output", bytes.NewReader(body))
		h(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if state != want {
			t.Errorf("expected state %v after post", want)
		}
	}
}
