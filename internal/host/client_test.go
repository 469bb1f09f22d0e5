// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClientWithConfig(&ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 1,
		RetryWait:  10 * time.Millisecond,
	})
	return client, server
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL != "http://127.0.0.1:49613" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestNewClientWithConfigFillsDefaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})
	cfg := client.GetConfig()
	if cfg.BaseURL == "" || cfg.Timeout == 0 || cfg.MaxRetries == 0 {
		t.Errorf("zero values not defaulted: %+v", cfg)
	}

	if NewClientWithConfig(nil) == nil {
		t.Error("nil config not accepted")
	}
}

func TestProbe(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/probe" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	if err := client.Probe(context.Background()); err != nil {
		t.Errorf("Probe() = %v", err)
	}
}

func TestProbeUnreachable(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		BaseURL:    "http://127.0.0.1:1", // nothing listens here
		Timeout:    500 * time.Millisecond,
		MaxRetries: 1,
		RetryWait:  time.Millisecond,
	})

	err := client.Probe(context.Background())
	if err == nil {
		t.Fatal("Probe() = nil for unreachable daemon")
	}
	if !IsUnavailable(err) {
		t.Errorf("IsUnavailable(%v) = false", err)
	}
}

func TestFetchMachineProfile(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"os":                   "Ubuntu",
			"os_version":           "24.04",
			"cpu_name":             "Ryzen 9",
			"cpu_cores":            16,
			"total_memory":         uint64(32) << 30,
			"available_disk_space": uint64(500) << 30,
			"gpu_info":             []string{"NVIDIA RTX 4080"},
			"python_version":       "Python 3.12.1",
			"git_version":          "git version 2.45.0",
			"cuda_available":       true,
		})
	}))
	defer server.Close()

	profile, err := client.FetchMachineProfile(context.Background())
	if err != nil {
		t.Fatalf("FetchMachineProfile() = %v", err)
	}
	if profile.OS != "Ubuntu" || profile.CPUCores != 16 {
		t.Errorf("profile = %+v", profile)
	}
	if profile.PrimaryGPU() != "NVIDIA RTX 4080" {
		t.Errorf("PrimaryGPU() = %q", profile.PrimaryGPU())
	}
	if !profile.CUDAAvailable {
		t.Error("CUDAAvailable = false")
	}
}

func TestStartInstallValidatesRequest(t *testing.T) {
	client := NewClient()

	tests := []struct {
		name string
		req  InstallRequest
	}{
		{"empty path", InstallRequest{ModelType: VariantStandard}},
		{"bad variant", InstallRequest{InstallPath: "/opt/vox", ModelType: "turbo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.StartInstall(context.Background(), tt.req)
			if err == nil {
				t.Fatal("StartInstall() accepted an invalid request")
			}
		})
	}
}

func TestStartInstallSendsRequestID(t *testing.T) {
	var received map[string]interface{}
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(map[string]string{"message": "accepted"})
	}))
	defer server.Close()

	ack, err := client.StartInstall(context.Background(), InstallRequest{
		InstallPath: "/opt/voxstudio",
		ModelType:   VariantLarge,
		UseGPU:      true,
	})
	if err != nil {
		t.Fatalf("StartInstall() = %v", err)
	}
	if received["install_path"] != "/opt/voxstudio" || received["model_type"] != "large" {
		t.Errorf("request body = %v", received)
	}
	if received["request_id"] == "" || received["request_id"] == nil {
		t.Error("no request_id sent")
	}
	// The daemon did not echo an ID; the client-assigned one is kept.
	if ack.RequestID == "" {
		t.Error("ack has no request ID")
	}
}

func TestProgressSurfacesDaemonErrorVerbatim(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "installation state is corrupted"})
	}))
	defer server.Close()

	_, err := client.Progress(context.Background())
	if err == nil {
		t.Fatal("Progress() = nil for daemon error")
	}
	if err.Error() != "installation state is corrupted" {
		t.Errorf("error = %q, want daemon message verbatim", err.Error())
	}
}

func TestProgressDecodesReport(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"step":        "models",
			"progress":    65,
			"message":     "Installing voice models...",
			"is_complete": false,
			"has_error":   false,
		})
	}))
	defer server.Close()

	report, err := client.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress() = %v", err)
	}
	if report.Step != "models" || report.Percent != 65 {
		t.Errorf("report = %+v", report)
	}
	if !report.Running() {
		t.Error("Running() = false for an in-flight report")
	}
}

func TestEmptyReport(t *testing.T) {
	report := EmptyReport()
	if report.Step != "idle" || report.Percent != 0 || report.Message != "" {
		t.Errorf("EmptyReport() = %+v", report)
	}
	if report.Complete || report.Failed {
		t.Error("EmptyReport() has a terminal flag set")
	}
	if !report.Running() {
		t.Error("EmptyReport().Running() = false")
	}
}

func TestModelVariantValid(t *testing.T) {
	for _, v := range []ModelVariant{VariantStandard, VariantLarge, VariantSmall} {
		if !v.Valid() {
			t.Errorf("%q.Valid() = false", v)
		}
	}
	if ModelVariant("turbo").Valid() {
		t.Error(`"turbo".Valid() = true`)
	}
	if ModelVariant("").Valid() {
		t.Error(`"".Valid() = true`)
	}
}
