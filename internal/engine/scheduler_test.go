package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"synthcheck/internal/data"
	"synthcheck/internal/data/models"
	"synthcheck/internal/fetcher"
	_ "synthcheck/internal/fetcher/providers"
	"synthcheck/internal/web"
)

func newTestScheduler(t *testing.T, concurrency int) *Scheduler {
	t.Helper()
	client := web.NewClient(web.WithTimeout(5 * time.Second))
	f := fetcher.NewFetcher(client, fetcher.NewRequestBudget())
	f.DisableOCR()
	s, err := NewScheduler(f, concurrency)
	if err != nil {
		t.Fatalf("NewScheduler returned error: %v", err)
	}
	return s
}

func policyPlatform(server *httptest.Server, name string) data.Platform {
	return data.Platform{Name: name, PolicyURL: server.URL + "/policy"}
}

func TestScheduler_Execute_Stream_SinglePlatformSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/policy", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>Synthetic content must carry a label.</p></body></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	plan := NewScanPlan()
	platform := policyPlatform(server, "Alpha")
	if err := plan.AddPlatform(platform, nil); err != nil {
		t.Fatalf("AddPlatform returned error: %v", err)
	}

	s := newTestScheduler(t, 1)
	resCh, errCh := s.Execute(context.Background(), plan)

	var results []PlatformExecutionResult
	for res := range resCh {
		results = append(results, res)
	}
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected scheduler error: %v", err)
		}
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.PlatformKey != planKey(platform) {
		t.Fatalf("unexpected platform key: %s", res.PlatformKey)
	}
	if len(res.DepErrs) != 0 {
		t.Fatalf("unexpected dependency errors: %v", res.DepErrs)
	}
	val, ok := res.Data.Get(data.DepPolicyText)
	if !ok {
		t.Fatal("policy text dependency missing from result data")
	}
	doc, ok := val.(*models.PolicyDocument)
	if !ok {
		t.Fatalf("unexpected policy payload type %T", val)
	}
	if doc.Text != "Synthetic content must carry a label." {
		t.Fatalf("unexpected extracted text: %q", doc.Text)
	}
}

func TestScheduler_Execute_Stream_SurfacesDependencyErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/policy", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	plan := NewScanPlan()
	if err := plan.AddPlatform(policyPlatform(server, "Alpha"), nil); err != nil {
		t.Fatalf("AddPlatform returned error: %v", err)
	}

	s := newTestScheduler(t, 1)
	resCh, errCh := s.Execute(context.Background(), plan)

	var results []PlatformExecutionResult
	for res := range resCh {
		results = append(results, res)
	}
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected scheduler error: %v", err)
		}
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].DepErrs[data.DepPolicyText] == nil {
		t.Fatal("expected dependency error for failed policy fetch")
	}
	if _, ok := results[0].Data.Get(data.DepPolicyText); ok {
		t.Fatal("failed dependency should not appear in result data")
	}
}

func TestScheduler_Execute_Stream_NPlatformsExactlyNResults_AndChannelsClose(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>Policy text.</body></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	const n = 5
	plan := NewScanPlan()
	for i := 0; i < n; i++ {
		platform := data.Platform{
			Name:      fmt.Sprintf("Platform %d", i),
			PolicyURL: fmt.Sprintf("%s/policy/%d", server.URL, i),
		}
		if err := plan.AddPlatform(platform, nil); err != nil {
			t.Fatalf("AddPlatform returned error: %v", err)
		}
	}

	s := newTestScheduler(t, 3)
	resCh, errCh := s.Execute(context.Background(), plan)

	seen := make(map[string]bool)
	for res := range resCh {
		if seen[res.PlatformKey] {
			t.Fatalf("duplicate result for %s", res.PlatformKey)
		}
		seen[res.PlatformKey] = true
	}
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected scheduler error: %v", err)
		}
	}

	if len(seen) != n {
		t.Fatalf("expected %d results, got %d", n, len(seen))
	}
}

func TestScheduler_Execute_Stream_CancellationStopsPromptly(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/policy", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	defer close(release)

	plan := NewScanPlan()
	if err := plan.AddPlatform(policyPlatform(server, "Slow"), nil); err != nil {
		t.Fatalf("AddPlatform returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := newTestScheduler(t, 1)
	resCh, errCh := s.Execute(ctx, plan)

	cancel()

	deadline := time.After(5 * time.Second)
	for resCh != nil || errCh != nil {
		select {
		case _, ok := <-resCh:
			if !ok {
				resCh = nil
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				t.Fatalf("expected context.Canceled, got %v", err)
			}
		case <-deadline:
			t.Fatal("scheduler did not stop after cancellation")
		}
	}
}

func TestScheduler_Execute_Stream_FatalNilPlatformPlanDoesNotPanic(t *testing.T) {
	plan := NewScanPlan()
	plan.PlatformPlans["https://broken.example/policy"] = nil

	s := newTestScheduler(t, 1)
	resCh, errCh := s.Execute(context.Background(), plan)

	for range resCh {
	}
	var fatal error
	for err := range errCh {
		if err != nil {
			fatal = err
		}
	}
	if fatal == nil {
		t.Fatal("expected fatal error for nil platform plan")
	}
}

func TestNewScheduler_Validation(t *testing.T) {
	if _, err := NewScheduler(nil, 1); err == nil {
		t.Fatal("expected error for nil fetcher")
	}
	client := web.NewClient()
	f := fetcher.NewFetcher(client, fetcher.NewRequestBudget())
	if _, err := NewScheduler(f, 0); err == nil {
		t.Fatal("expected error for zero concurrency")
	}
}
