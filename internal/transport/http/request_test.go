package http

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"nexus-api/internal/domain"

	"github.com/go-chi/chi/v5"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr error
	}{
		{raw: "42", want: 42},
		{raw: "0", want: 0},
		{raw: "abc", wantErr: domain.ErrIDNotNumeric},
		{raw: "1.5", wantErr: domain.ErrIDNotNumeric},
		{raw: "", wantErr: domain.ErrIDNotNumeric},
		{raw: "-3", wantErr: domain.ErrIDNegative},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/person/x", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tc.raw)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			got, err := pathID(r)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %d, got %d (%v)", tc.want, got, err)
			}
		})
	}
}
