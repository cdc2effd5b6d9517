package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewedSession(t *testing.T, e *Engine) *Session {
	t.Helper()
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Pijnbestrijding"))
	s = mustApply(t, e, s, SelectTopic("Pijnbestrijding", "Epiduraal"))
	s = mustApply(t, e, s, SelectTopic("Pijnbestrijding", "Lachgas"))
	s = mustApply(t, e, s, FreeTextAnswer("Graag beschikbaar houden."))
	s = mustApply(t, e, s, FreeTextAnswer("Wil ik eerst proberen."))
	s = mustApply(t, e, s, SelectTheme("Voeding"))
	s = mustApply(t, e, s, SelectTopic("Voeding", "Borstvoeding"))
	s = mustApply(t, e, s, FreeTextAnswer("Ja, direct huid-op-huid."))
	require.Equal(t, StageReview, s.Stage)
	return s
}

func TestExportOrderingMatchesInsertion(t *testing.T) {
	e := NewEngine(nil)
	s := reviewedSession(t, e)

	require.NoError(t, Exportable(s))
	doc := Export(s)

	require.Len(t, doc.Themes, 2)
	assert.Equal(t, "Pijnbestrijding", doc.Themes[0].Name)
	assert.Equal(t, "Voeding", doc.Themes[1].Name)
	assert.Equal(t, []string{"Epiduraal", "Lachgas"}, doc.Themes[0].Topics)
	require.Len(t, doc.Themes[0].QA, 2)
	assert.Equal(t, "Graag beschikbaar houden.", doc.Themes[0].QA[0].Answer)
	assert.Equal(t, "Wil ik eerst proberen.", doc.Themes[0].QA[1].Answer)
	require.Len(t, doc.Themes[1].QA, 1)
	assert.Equal(t, s.ID, doc.SessionID)
}

func TestExportIsPure(t *testing.T) {
	e := NewEngine(nil)
	s := reviewedSession(t, e)
	before := s.Clone()

	_ = Export(s)
	assert.Equal(t, before.QA, s.QA)
	assert.Equal(t, before.Stage, s.Stage)
	assert.Equal(t, before.Themes, s.Themes)
}

func TestExportGating(t *testing.T) {
	fresh := NewSession()
	assert.ErrorIs(t, Exportable(fresh), ErrExportNotReady)

	choosing := NewSession()
	choosing.Stage = StageChooseTheme
	assert.ErrorIs(t, Exportable(choosing), ErrExportNotReady)

	emptyReview := NewSession()
	emptyReview.Stage = StageReview
	assert.ErrorIs(t, Exportable(emptyReview), ErrNothingToExport)

	e := NewEngine(nil)
	s := reviewedSession(t, e)
	assert.NoError(t, Exportable(s))
	s = mustApply(t, e, s, AdvanceReview())
	assert.NoError(t, Exportable(s), "exported sessions stay retrievable")
}
