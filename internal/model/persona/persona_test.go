package persona

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumhall/roundtable/internal/knowledge"
)

type fakeRetriever struct{ id string }

func (f *fakeRetriever) Query(context.Context, string, int) ([]knowledge.Hit, error) {
	return nil, nil
}

func TestSeedRegistrationOrder(t *testing.T) {
	panel := Seed()
	require.Len(t, panel, 3)
	assert.Equal(t, "Legal-AI", panel[0].Name)
	assert.Equal(t, "Tech-AI", panel[1].Name)
	assert.Equal(t, "Business-AI", panel[2].Name)

	assert.InDelta(t, 0.3, panel[0].Personality.Temperature, 1e-9)
	assert.InDelta(t, 0.7, panel[1].Personality.Temperature, 1e-9)
	assert.InDelta(t, 0.6, panel[2].Personality.Temperature, 1e-9)
}

func TestBindKnowledgeFirstBindingWins(t *testing.T) {
	p := New("Legal-AI", "Legal Expert", "llama2", Personality{})

	_, ok := p.Knowledge()
	assert.False(t, ok)

	first := &fakeRetriever{id: "first"}
	p.BindKnowledge(first)
	p.BindKnowledge(&fakeRetriever{id: "second"})

	got, ok := p.Knowledge()
	require.True(t, ok)
	assert.Same(t, first, got.(*fakeRetriever))
}

func TestMemoryStoreLookup(t *testing.T) {
	store := NewMemoryStore(Seed())

	p, ok := store.FindByName("Tech-AI")
	require.True(t, ok)
	assert.Equal(t, "Technical Expert", p.Role)

	_, ok = store.FindByName("Chef-AI")
	assert.False(t, ok)

	names := make([]string, 0, 3)
	for _, p := range store.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Legal-AI", "Tech-AI", "Business-AI"}, names)
}
