package classify

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// --- stub generator ---

type stubGen struct {
	reply string
	err   error
}

func (s *stubGen) Generate(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

// --- heuristic fallback ---

func TestHeuristicTypes(t *testing.T) {
	tests := []struct {
		query string
		want  types.QueryType
	}{
		{"What is quantum computing?", types.QueryFactual},
		{"Who was Ada Lovelace", types.QueryFactual},
		{"latest developments in fusion power", types.QueryNews},
		{"how to install sqlite on debian", types.QueryTechnical},
		{"do you think remote work is overrated", types.QueryOpinion},
		{"climate change effects on agriculture", types.QueryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q := Heuristic(tt.query)
			if q.Type != tt.want {
				t.Errorf("Heuristic(%q).Type = %q, want %q", tt.query, q.Type, tt.want)
			}
			if q.Confidence != 0.6 {
				t.Errorf("Confidence = %f, want 0.6", q.Confidence)
			}
		})
	}
}

func TestHeuristicFactualTargetsEncyclopedia(t *testing.T) {
	q := Heuristic("What is quantum computing?")
	found := false
	for _, k := range q.TargetSources {
		if k == types.SourceEncyclopedia {
			found = true
		}
	}
	if !found {
		t.Errorf("factual query target sources %v should include encyclopedia", q.TargetSources)
	}
}

func TestHeuristicIdempotent(t *testing.T) {
	a := Heuristic("What is the best way to learn Go?")
	b := Heuristic("What is the best way to learn Go?")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("heuristic is not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestTokenizeDropsStopwords(t *testing.T) {
	terms := Tokenize("What is the history of the Roman Empire?")
	for _, term := range terms {
		if stopwords[term] {
			t.Errorf("stopword %q survived tokenization: %v", term, terms)
		}
	}
	if len(terms) == 0 {
		t.Fatal("no terms extracted")
	}
	if len(terms) > 6 {
		t.Errorf("len(terms) = %d, want at most 6", len(terms))
	}
}

// --- model-backed classification ---

func TestClassifyWellFormedReply(t *testing.T) {
	p := &Processor{Gen: &stubGen{reply: `{
		"refinedQuery": "quantum computing overview",
		"queryType": "factual",
		"targetSources": ["encyclopedia", "academic"],
		"searchTerms": ["quantum", "computing"],
		"confidence": 0.85
	}`}}

	q := p.Classify(context.Background(), "what is quantum computing")
	if q.RefinedText != "quantum computing overview" {
		t.Errorf("RefinedText = %q", q.RefinedText)
	}
	if q.Type != types.QueryFactual {
		t.Errorf("Type = %q, want factual", q.Type)
	}
	want := []types.SourceKind{types.SourceEncyclopedia, types.SourceAcademic}
	if !reflect.DeepEqual(q.TargetSources, want) {
		t.Errorf("TargetSources = %v, want %v", q.TargetSources, want)
	}
	if q.Confidence != 0.85 {
		t.Errorf("Confidence = %f, want 0.85", q.Confidence)
	}
	if q.OriginalText != "what is quantum computing" {
		t.Errorf("OriginalText = %q", q.OriginalText)
	}
}

func TestClassifySurroundingProse(t *testing.T) {
	p := &Processor{Gen: &stubGen{reply: "Here is the classification:\n" +
		`{"refinedQuery": "go generics", "queryType": "technical", "targetSources": ["community-qa-1"], "searchTerms": ["go", "generics"], "confidence": 0.9}` +
		"\nLet me know if you need more."}}

	q := p.Classify(context.Background(), "go generics")
	if q.Type != types.QueryTechnical {
		t.Errorf("Type = %q, want technical (JSON should be found inside prose)", q.Type)
	}
}

func TestClassifyDefaultsMissingFields(t *testing.T) {
	p := &Processor{Gen: &stubGen{reply: `{"queryType": "factual"}`}}

	q := p.Classify(context.Background(), "tallest mountain on earth")
	if q.RefinedText != "tallest mountain on earth" {
		t.Errorf("RefinedText = %q, want original query", q.RefinedText)
	}
	want := []types.SourceKind{types.SourceEncyclopedia, types.SourceNews}
	if !reflect.DeepEqual(q.TargetSources, want) {
		t.Errorf("TargetSources = %v, want default %v", q.TargetSources, want)
	}
	if len(q.SearchTerms) == 0 {
		t.Error("SearchTerms should default to query tokens")
	}
	if q.Confidence != 0.7 {
		t.Errorf("Confidence = %f, want default 0.7", q.Confidence)
	}
}

func TestClassifyInvalidTypeDefaultsToGeneral(t *testing.T) {
	p := &Processor{Gen: &stubGen{reply: `{"queryType": "philosophical"}`}}

	q := p.Classify(context.Background(), "meaning of life")
	if q.Type != types.QueryGeneral {
		t.Errorf("Type = %q, want general", q.Type)
	}
}

func TestClassifyUnknownSourcesDropped(t *testing.T) {
	p := &Processor{Gen: &stubGen{reply: `{"queryType": "factual", "targetSources": ["encyclopedia", "dark-web", "carrier-pigeon"]}`}}

	q := p.Classify(context.Background(), "something")
	want := []types.SourceKind{types.SourceEncyclopedia}
	if !reflect.DeepEqual(q.TargetSources, want) {
		t.Errorf("TargetSources = %v, want %v", q.TargetSources, want)
	}
}

func TestClassifyFallsBackOnGeneratorError(t *testing.T) {
	p := &Processor{Gen: &stubGen{err: errors.New("401 unauthorized")}}

	q := p.Classify(context.Background(), "What is quantum computing?")
	if q.Type != types.QueryFactual {
		t.Errorf("Type = %q, want factual from heuristic fallback", q.Type)
	}
	if q.Confidence != 0.6 {
		t.Errorf("Confidence = %f, want heuristic 0.6", q.Confidence)
	}
}

func TestClassifyFallsBackOnMalformedJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no json", "I could not classify that."},
		{"truncated", `{"queryType": "fact`},
		{"wrong shape", `{"queryType": ["factual"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Processor{Gen: &stubGen{reply: tt.reply}}
			q := p.Classify(context.Background(), "What is quantum computing?")
			if q.Confidence != 0.6 {
				t.Errorf("Confidence = %f, want heuristic 0.6", q.Confidence)
			}
		})
	}
}

func TestClassifyNilGenerator(t *testing.T) {
	p := &Processor{}
	q := p.Classify(context.Background(), "latest fusion news")
	if q.Type != types.QueryNews {
		t.Errorf("Type = %q, want news from heuristic", q.Type)
	}
}

func TestClassifyConfidenceOutOfRangeDefaulted(t *testing.T) {
	p := &Processor{Gen: &stubGen{reply: `{"queryType": "factual", "confidence": 3.5}`}}
	q := p.Classify(context.Background(), "something")
	if q.Confidence != 0.7 {
		t.Errorf("Confidence = %f, want default 0.7 for out-of-range value", q.Confidence)
	}
}
