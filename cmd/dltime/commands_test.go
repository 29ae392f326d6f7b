package main

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "none"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return strings.TrimSpace(out.String()), err
}

func TestEstimateCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "decimal units",
			args: []string{"estimate", "100", "MB", "10", "MB/s"},
			want: "10s",
		},
		{
			name: "binary units",
			args: []string{"estimate", "1", "GiB", "1", "MiB/s"},
			want: "17m 4s",
		},
		{
			name: "plain",
			args: []string{"estimate", "--plain", "1", "GIBI_BYTE", "1", "MEBIBYTES_PER_SECOND"},
			want: "1024s",
		},
		{
			name: "days",
			args: []string{"estimate", "100", "GB", "1", "MB/s"},
			want: "1d 3h 46m 40s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runCmd(t, tt.args...)
			if err != nil {
				t.Fatalf("estimate %v unexpected error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("estimate %v = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestEstimateCmdErrors(t *testing.T) {
	tests := [][]string{
		{"estimate", "1", "GiB", "0", "MiB/s"},
		{"estimate", "abc", "GiB", "1", "MiB/s"},
		{"estimate", "1", "GiB", "1"},
		{"estimate", "1", "GiB", "1", "MiB"},
		{"estimate", "1", "TB", "1", "MB/s"},
	}

	for _, args := range tests {
		got, err := runCmd(t, args...)
		if err == nil {
			t.Errorf("%v: expected error, got %q", args, got)
		}
		// main logs the error; the command itself prints nothing
		if got != "" {
			t.Errorf("%v: unexpected output %q", args, got)
		}
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{0, "0 B"},
		{1e6, "1.0 MB"},
		{-5, "-5"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
		{1e20, "1e+20"},
	}

	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%v) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestEstimateCmdFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "3000")
		w.Write(bytes.Repeat([]byte("z"), 3000))
	}))
	defer srv.Close()

	got, err := runCmd(t, "estimate", "--url", srv.URL, "1", "kB/s")
	if err != nil {
		t.Fatalf("estimate --url unexpected error: %v", err)
	}
	if got != "3s" {
		t.Errorf("estimate --url = %q, want %q", got, "3s")
	}
}

func TestEstimateCmdFromPutio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","file":{"id":9,"name":"big.iso","size":2147483648,"content_type":"application/octet-stream"}}`))
	}))
	defer srv.Close()

	t.Setenv("DLTIME_PUTIO_TOKEN", "test-token")
	t.Setenv("DLTIME_PUTIO_BASE_URL", srv.URL)

	got, err := runCmd(t, "estimate", "--putio-file", "9", "2", "MiB/s")
	if err != nil {
		t.Fatalf("estimate --putio-file unexpected error: %v", err)
	}
	if got != "17m 4s" {
		t.Errorf("estimate --putio-file = %q, want %q", got, "17m 4s")
	}
}

func TestEstimateCmdPutioWithoutToken(t *testing.T) {
	t.Setenv("DLTIME_PUTIO_TOKEN", "")
	if _, err := runCmd(t, "estimate", "--putio-file", "9", "2", "MiB/s"); err == nil {
		t.Error("estimate --putio-file without token: expected error")
	}
}

func TestParseCmd(t *testing.T) {
	got, err := runCmd(t, "parse", "2d", "3h", "4m", "5s")
	if err != nil {
		t.Fatalf("parse unexpected error: %v", err)
	}
	if got != "183845" {
		t.Errorf("parse = %q, want %q", got, "183845")
	}

	if _, err := runCmd(t, "parse", "xm 5s"); err == nil {
		t.Error("parse of malformed duration: expected error")
	}
}

func TestProbeCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Probe", "yes")
	}))
	defer srv.Close()

	got, err := runCmd(t, "probe", srv.URL)
	if err != nil {
		t.Fatalf("probe unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "======Header:======") {
		t.Errorf("probe output missing banner: %q", got)
	}
	if !strings.Contains(got, "-X-Probe\n  > yes") {
		t.Errorf("probe output missing header: %q", got)
	}

	if _, err := runCmd(t, "probe", "not a url"); err == nil {
		t.Error("probe of malformed URL: expected error")
	}
}

func TestMeasureCmdArgs(t *testing.T) {
	if _, err := runCmd(t, "measure"); err == nil {
		t.Error("measure without URL: expected error")
	}
}
