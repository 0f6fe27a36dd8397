package extract

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pressroom-labs/pressroom/internal/chunk"
	"github.com/pressroom-labs/pressroom/internal/logging"
)

// promptMarkers map each task prompt's trailing cue back to its category
// so the stub can answer per pass without inspecting internals.
var promptMarkers = map[string]Category{
	"Executive Summary:":         CategoryExecutiveSummary,
	"Key Highlights (JSON):":     CategoryKeyHighlights,
	"Feature Articles (JSON):":   CategoryFeatureArticles,
	"Quick Bites:":               CategoryQuickBites,
	"Action Items (JSON):":       CategoryActionItems,
	"Technologies (JSON):":       CategoryTechnologies,
	"Architectures (JSON):":      CategoryArchitectures,
	"Best Practices:":            CategoryBestPractices,
	"Diagrams (JSON):":           CategoryDiagrams,
	"Strategic Insights (JSON):": CategoryStrategicInsights,
}

type stubCompleter struct {
	responses map[Category]string
	failures  map[Category]error
	calls     []Category
	onCall    func(calls int)
}

func (s *stubCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	var category Category
	for marker, c := range promptMarkers {
		if strings.HasSuffix(req.Prompt, marker) {
			category = c
			break
		}
	}
	s.calls = append(s.calls, category)
	if s.onCall != nil {
		s.onCall(len(s.calls))
	}
	if err, ok := s.failures[category]; ok {
		return "", err
	}
	return s.responses[category], nil
}

func (s *stubCompleter) Available() bool { return true }

// testDocument is exactly n characters with the given phrases embedded.
func testDocument(t *testing.T, n int, phrases ...string) string {
	t.Helper()
	var b strings.Builder
	for _, p := range phrases {
		b.WriteString(p)
		b.WriteString(". ")
	}
	for b.Len() < n {
		b.WriteString("The platform team reviewed deployment strategy and cost. ")
	}
	doc := b.String()[:n]
	if len(doc) != n {
		t.Fatalf("test document is %d chars, want %d", len(doc), n)
	}
	return doc
}

func stubResponses() map[Category]string {
	return map[Category]string{
		CategoryExecutiveSummary: "The quarter delivered revenue growth of 20% on the back of the Kubernetes migration.",
		CategoryKeyHighlights:    `[{"title":"Revenue Growth of 20%","description":"Quarterly revenue grew 20% after the migration.","category":"Business"}]`,
		CategoryFeatureArticles:  `[{"title":"Kubernetes Migration","context":"Legacy VMs limited scaling.","key_ideas":["containerization"],"benefits":"elastic capacity","best_practices":"use managed control planes","call_to_action":"finish phase two"}]`,
		CategoryQuickBites:       "- New cluster autoscaler enabled\n- Cost dashboard shipped",
		CategoryActionItems:      `{"engineering_teams":["migrate remaining services"],"architecture_teams":["review multi-region design"],"leadership":["approve phase two budget"]}`,
		CategoryTechnologies:     `["Kubernetes","Terraform","Prometheus"]`,
		CategoryArchitectures:    `[{"name":"Hub and Spoke","description":"Central cluster with edge workloads.","components":["hub cluster","edge nodes"],"use_case":"multi-region workloads"}]`,
		CategoryBestPractices:    "1. Pin base image digests\n2. Run load tests before cutover",
		CategoryDiagrams:         `[{"type":"architecture","title":"Cluster Topology","purpose":"Explain hub and spoke layout","elements":["hub","spoke-a","spoke-b"],"description":"Nodes grouped by region."}]`,
		CategoryStrategicInsights: `{"business_impact":"Revenue growth of 20% attributable to the migration.",` +
			`"risk_factors":"Single-region control plane.",` +
			`"strategic_opportunities":"Expand to a second region.",` +
			`"key_metrics":["20% revenue growth","p99 latency"]}`,
	}
}

func newTestEngine(t *testing.T, completer Completer) *Engine {
	t.Helper()
	chunker, err := chunk.NewChunker(chunk.DefaultSize, chunk.DefaultOverlap)
	if err != nil {
		t.Fatalf("NewChunker() error = %v", err)
	}
	engine, err := NewEngine(chunker, completer, logging.NewTestLogger(t))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func TestNewEngineValidation(t *testing.T) {
	chunker, _ := chunk.NewChunker(chunk.DefaultSize, chunk.DefaultOverlap)

	if _, err := NewEngine(nil, unavailableCompleter{}, nil); err == nil {
		t.Error("NewEngine() should reject a nil chunker")
	}
	if _, err := NewEngine(chunker, nil, nil); err == nil {
		t.Error("NewEngine() should reject a nil completer")
	}
	if _, err := NewEngine(chunker, unavailableCompleter{}, nil); err != nil {
		t.Errorf("NewEngine() with nil logger error = %v", err)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	engine := newTestEngine(t, &stubCompleter{responses: stubResponses()})
	for _, content := range []string{"", "   \n\t  "} {
		if _, err := engine.Extract(context.Background(), content); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("Extract(%q) error = %v, want ErrEmptyDocument", content, err)
		}
	}
}

func TestExtractEndToEnd(t *testing.T) {
	stub := &stubCompleter{responses: stubResponses()}
	engine := newTestEngine(t, stub)
	doc := testDocument(t, 5000, "Quarterly results show revenue growth of 20%", "The Kubernetes migration completed on schedule")

	knowledge, err := engine.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if knowledge.Metadata.TotalChars != 5000 {
		t.Errorf("Metadata.TotalChars = %d, want 5000", knowledge.Metadata.TotalChars)
	}
	if want := len(strings.Fields(doc)); knowledge.Metadata.TotalWords != want {
		t.Errorf("Metadata.TotalWords = %d, want %d", knowledge.Metadata.TotalWords, want)
	}

	if !strings.Contains(knowledge.ExecutiveSummary, "revenue growth of 20%") {
		t.Errorf("ExecutiveSummary = %q", knowledge.ExecutiveSummary)
	}
	if len(knowledge.KeyHighlights) != 1 || knowledge.KeyHighlights[0].Title != "Revenue Growth of 20%" {
		t.Errorf("KeyHighlights = %+v", knowledge.KeyHighlights)
	}
	if len(knowledge.FeatureArticles) != 1 || knowledge.FeatureArticles[0].Title != "Kubernetes Migration" {
		t.Errorf("FeatureArticles = %+v", knowledge.FeatureArticles)
	}
	if want := []string{"New cluster autoscaler enabled", "Cost dashboard shipped"}; !reflect.DeepEqual(knowledge.QuickBites, want) {
		t.Errorf("QuickBites = %v, want %v", knowledge.QuickBites, want)
	}
	if len(knowledge.ActionItems.Leadership) != 1 || knowledge.ActionItems.Leadership[0] != "approve phase two budget" {
		t.Errorf("ActionItems = %+v", knowledge.ActionItems)
	}

	foundK8s := false
	for _, tech := range knowledge.Technologies {
		if tech == "Kubernetes" {
			foundK8s = true
		}
	}
	if !foundK8s {
		t.Errorf("Technologies = %v, want it to contain Kubernetes", knowledge.Technologies)
	}

	if len(knowledge.Architectures) != 1 || knowledge.Architectures[0].Name != "Hub and Spoke" {
		t.Errorf("Architectures = %+v", knowledge.Architectures)
	}
	if want := []string{"Pin base image digests", "Run load tests before cutover"}; !reflect.DeepEqual(knowledge.BestPractices, want) {
		t.Errorf("BestPractices = %v, want %v", knowledge.BestPractices, want)
	}
	if len(knowledge.DiagramSuggestions) != 1 || knowledge.DiagramSuggestions[0].Type != DiagramArchitecture {
		t.Errorf("DiagramSuggestions = %+v", knowledge.DiagramSuggestions)
	}
	if !strings.Contains(string(knowledge.StrategicInsights.BusinessImpact), "20%") {
		t.Errorf("StrategicInsights.BusinessImpact = %q", knowledge.StrategicInsights.BusinessImpact)
	}

	if len(stub.calls) != len(Tasks()) {
		t.Errorf("completer saw %d calls, want %d", len(stub.calls), len(Tasks()))
	}
}

func TestExtractDegradedModeIsDeterministic(t *testing.T) {
	engine := newTestEngine(t, unavailableCompleter{})
	doc := testDocument(t, 3000, "Notes about the migration")

	first, err := engine.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := engine.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("degraded runs over the same document differ")
	}
	if first.ExecutiveSummary != "" {
		t.Errorf("ExecutiveSummary = %q, want empty", first.ExecutiveSummary)
	}
	if first.QuickBites == nil || len(first.QuickBites) != 0 {
		t.Errorf("QuickBites = %#v, want empty non-nil slice", first.QuickBites)
	}
	if first.KeyHighlights == nil || len(first.KeyHighlights) != 0 {
		t.Errorf("KeyHighlights = %#v, want empty non-nil slice", first.KeyHighlights)
	}
	if first.Metadata.TotalChars != 3000 {
		t.Errorf("Metadata.TotalChars = %d, want 3000", first.Metadata.TotalChars)
	}
}

func TestExtractFailureIsolation(t *testing.T) {
	stub := &stubCompleter{
		responses: stubResponses(),
		failures:  map[Category]error{CategoryFeatureArticles: errors.New("rate limited")},
	}
	engine := newTestEngine(t, stub)
	doc := testDocument(t, 4000, "Platform strategy review")

	knowledge, err := engine.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(knowledge.FeatureArticles) != 0 {
		t.Errorf("FeatureArticles = %+v, want empty after task failure", knowledge.FeatureArticles)
	}
	if knowledge.ExecutiveSummary == "" {
		t.Error("ExecutiveSummary should survive a sibling task failure")
	}
	if len(knowledge.Technologies) == 0 {
		t.Error("Technologies should survive a sibling task failure")
	}
	if len(stub.calls) != len(Tasks()) {
		t.Errorf("completer saw %d calls, want all %d tasks attempted", len(stub.calls), len(Tasks()))
	}
}

func TestExtractReturnsPartialOnDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &stubCompleter{responses: stubResponses()}
	stub.onCall = func(calls int) {
		if calls == 2 {
			cancel()
		}
	}
	engine := newTestEngine(t, stub)
	doc := testDocument(t, 4000, "Quarterly review notes")

	knowledge, err := engine.Extract(ctx, doc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if knowledge.ExecutiveSummary == "" {
		t.Error("first pass should have completed before cancellation")
	}
	if len(knowledge.KeyHighlights) == 0 {
		t.Error("second pass should have completed before cancellation")
	}
	if len(knowledge.Technologies) != 0 {
		t.Errorf("Technologies = %v, want later passes abandoned", knowledge.Technologies)
	}
	if len(stub.calls) != 2 {
		t.Errorf("completer saw %d calls, want 2", len(stub.calls))
	}
}

func TestExtractUnparseableResponsesKeepDefaults(t *testing.T) {
	responses := stubResponses()
	responses[CategoryKeyHighlights] = "not json at all"
	responses[CategoryTechnologies] = "{broken"
	stub := &stubCompleter{responses: responses}
	engine := newTestEngine(t, stub)
	doc := testDocument(t, 2500, "Migration summary")

	knowledge, err := engine.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if knowledge.KeyHighlights == nil || len(knowledge.KeyHighlights) != 0 {
		t.Errorf("KeyHighlights = %#v, want empty non-nil slice", knowledge.KeyHighlights)
	}
	if knowledge.Technologies == nil || len(knowledge.Technologies) != 0 {
		t.Errorf("Technologies = %#v, want empty non-nil slice", knowledge.Technologies)
	}
	if knowledge.ExecutiveSummary == "" {
		t.Error("ExecutiveSummary should still populate from a well-formed response")
	}
}
