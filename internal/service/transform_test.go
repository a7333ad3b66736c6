package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Harshitk-cp/semprove/internal/derivation"
	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/Harshitk-cp/semprove/internal/semantics"
	"go.uber.org/zap"
)

const transformTemplates = `
- {category: 'NP/N', base: every, semantics: '\E F G.all x.(F(x) -> G(x))'}
- {category: N, base: dog, semantics: '\E x.E(x)', coq_type: 'Animal -> Prop'}
- {category: N, base: socrates, semantics: '\E x.E(x)', coq_type: Entity}
- {category: N, semantics: '\E x.E(x)'}
- {category: 'S\NP', semantics: '\E Q.Q(\x.E(x))'}
- {category: '*', rule: '>', semantics: '\L R.L(R)'}
- {category: '*', rule: '<', semantics: '\L R.R(L)'}
`

const everyDogDies = `<root><document><sentences>
  <sentence id="s0">
    <tokens>
      <token id="t0" surf="Every" base="every" category="NP/N"/>
      <token id="t1" surf="dog" base="dog" category="N"/>
      <token id="t2" surf="dies" base="die" category="S\NP"/>
    </tokens>
    <ccg id="c0" root="sp0">
      <span id="sp0" category="S" rule="&lt;" child="sp1 sp4"/>
      <span id="sp1" category="NP" rule="&gt;" child="sp2 sp3"/>
      <span id="sp2" category="NP/N" terminal="t0"/>
      <span id="sp3" category="N" terminal="t1"/>
      <span id="sp4" category="S\NP" terminal="t2"/>
    </ccg>
    <ccg id="c1" root="sp0">
      <span id="sp0" category="S" rule="&lt;" child="sp1 sp2"/>
      <span id="sp1" category="PP" terminal="t1"/>
      <span id="sp2" category="S\NP" terminal="t2"/>
    </ccg>
    <ccg id="c2" root="sp0">
      <span id="sp0" category="S" rule="&lt;" child="sp1 sp4"/>
      <span id="sp1" category="NP" rule="&gt;" child="sp2 sp3"/>
      <span id="sp2" category="NP/N" terminal="t0"/>
      <span id="sp3" category="N" terminal="t1"/>
      <span id="sp4" category="S\NP" terminal="t2"/>
    </ccg>
  </sentence>
</sentences></document></root>`

const socratesOnly = `<root><document><sentences>
  <sentence id="s0">
    <tokens><token id="t0" surf="Socrates" base="socrates" category="N"/></tokens>
    <ccg id="c0" root="sp0"><span id="sp0" category="N" terminal="t0"/></ccg>
  </sentence>
</sentences></document></root>`

// fakeSource serves fixed documents keyed by sentence id.
type fakeSource struct {
	docs  map[int64]string
	calls int
}

func (f *fakeSource) Load(ctx context.Context, req derivation.Request) (*derivation.Root, error) {
	f.calls++
	doc, ok := f.docs[req.SentenceID]
	if !ok {
		return nil, domain.ErrDerivationUnavailable
	}
	return derivation.Read(strings.NewReader(doc))
}

type transformFixture struct {
	sentences *mockSentenceStore
	formulas  *mockFormulaStore
	source    *fakeSource
	svc       *TransformService
}

func newTransformFixture(t *testing.T) *transformFixture {
	t.Helper()
	lex, err := semantics.ParseLexicon([]byte(transformTemplates))
	if err != nil {
		t.Fatalf("parse lexicon: %v", err)
	}
	fx := &transformFixture{
		sentences: newMockSentenceStore(),
		formulas:  newMockFormulaStore(),
		source:    &fakeSource{docs: make(map[int64]string)},
	}
	composer := semantics.NewComposer(lex, 2, zap.NewNop())
	fx.svc = NewTransformService(fx.sentences, fx.formulas, fx.source, composer, 0, zap.NewNop())
	return fx
}

func (fx *transformFixture) register(t *testing.T, text, doc string) int64 {
	t.Helper()
	sen := &domain.Sentence{Text: text}
	if err := fx.sentences.Create(context.Background(), sen); err != nil {
		t.Fatalf("create sentence: %v", err)
	}
	if doc != "" {
		fx.source.docs[sen.ID] = doc
	}
	return sen.ID
}

func TestTransformService_Transform(t *testing.T) {
	fx := newTransformFixture(t)
	id := fx.register(t, "Every dog dies.", everyDogDies)

	res, err := fx.svc.Transform(context.Background(), id, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(res.Attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(res.Attempts))
	}
	wantStatus := []string{"success", "failed", "success"}
	for i, a := range res.Attempts {
		if a.Rank != i+1 {
			t.Fatalf("attempt %d has rank %d", i, a.Rank)
		}
		if a.Status != wantStatus[i] {
			t.Fatalf("attempt %d: expected %s, got %s", i, wantStatus[i], a.Status)
		}
	}
	if res.Attempts[1].Error == "" {
		t.Fatal("expected failed attempt to carry its error")
	}

	// Two successful derivations produce the same formula; it is stored once.
	if len(res.Formulas) != 1 {
		t.Fatalf("expected 1 formula, got %d", len(res.Formulas))
	}
	f := res.Formulas[0]
	if f.Text != "all x.(dog(x) -> die(x))" {
		t.Fatalf("unexpected formula %q", f.Text)
	}
	wantLib := "Parameter Animal : Type.\nParameter dog : Animal -> Prop.\nParameter die : Animal -> Prop."
	if f.Library != wantLib {
		t.Fatalf("unexpected library %q", f.Library)
	}
	if !f.Validated || !f.Quality || f.SentenceID != id {
		t.Fatalf("unexpected formula row %+v", f)
	}
	if len(fx.formulas.formulas) != 1 {
		t.Fatalf("expected 1 stored formula, got %d", len(fx.formulas.formulas))
	}
}

func TestTransformService_NBest(t *testing.T) {
	fx := newTransformFixture(t)
	id := fx.register(t, "Every dog dies.", everyDogDies)

	res, err := fx.svc.Transform(context.Background(), id, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(res.Attempts))
	}
}

func TestTransformService_SoleDerivationFails(t *testing.T) {
	fx := newTransformFixture(t)
	id := fx.register(t, "Socrates.", socratesOnly)

	res, err := fx.svc.Transform(context.Background(), id, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Formulas) != 0 {
		t.Fatalf("expected no formulas, got %+v", res.Formulas)
	}
	if len(res.Attempts) != 1 || res.Attempts[0].Status != "failed" {
		t.Fatalf("expected one failed attempt, got %+v", res.Attempts)
	}
	if len(fx.formulas.formulas) != 0 {
		t.Fatal("expected nothing stored")
	}
}

func TestTransformService_DerivationUnavailable(t *testing.T) {
	fx := newTransformFixture(t)
	id := fx.register(t, "Nobody parsed this.", "")

	_, err := fx.svc.Transform(context.Background(), id, 0)
	if !errors.Is(err, domain.ErrDerivationUnavailable) {
		t.Fatalf("expected ErrDerivationUnavailable, got %v", err)
	}
}

func TestTransformService_SentenceNotFound(t *testing.T) {
	fx := newTransformFixture(t)
	_, err := fx.svc.Transform(context.Background(), 42, 0)
	if !errors.Is(err, ErrSentenceNotFound) {
		t.Fatalf("expected ErrSentenceNotFound, got %v", err)
	}
	if fx.source.calls != 0 {
		t.Fatal("source must not be called for an unknown sentence")
	}
}

func TestTransformService_StoreError(t *testing.T) {
	fx := newTransformFixture(t)
	id := fx.register(t, "Every dog dies.", everyDogDies)
	fx.formulas.err = errStoreDown

	_, err := fx.svc.Transform(context.Background(), id, 0)
	var se *domain.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
