package taxonomy_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbex/internal/domain"
	"carbex/internal/taxonomy"
)

func TestPostes_FixedTwentyTwoOrdered(t *testing.T) {
	postes := taxonomy.Postes()
	require.Len(t, postes, 22)
	for i, p := range postes {
		assert.Equal(t, i+1, p.Number)
		assert.NotEmpty(t, p.Label)
	}
}

func TestPostes_ReturnsCopy(t *testing.T) {
	postes := taxonomy.Postes()
	postes[0].Label = "changed"
	assert.NotEqual(t, "changed", taxonomy.Postes()[0].Label)
}

func TestPosteByCode(t *testing.T) {
	p, ok := taxonomy.PosteByCode("2.1")
	require.True(t, ok)
	assert.Equal(t, 5, p.Number)
	assert.Equal(t, 2, p.Scope())

	_, ok = taxonomy.PosteByCode("9.9")
	assert.False(t, ok)
}

func TestScopeOfCode(t *testing.T) {
	scopes := map[string]int{"1.1": 1, "1.5": 1, "2.2": 2, "3.1": 3, "6.2": 3, "": 3}
	for code, want := range scopes {
		assert.Equal(t, want, taxonomy.ScopeOfCode(code), code)
	}
}

func TestScope3CategoryName(t *testing.T) {
	assert.Equal(t, 15, taxonomy.Scope3CategoryCount)
	assert.Equal(t, "Purchased Goods and Services", taxonomy.Scope3CategoryName(1))
	assert.Equal(t, "Investments", taxonomy.Scope3CategoryName(15))
	assert.Empty(t, taxonomy.Scope3CategoryName(0))
	assert.Empty(t, taxonomy.Scope3CategoryName(16))
}

func TestMethodologyFor(t *testing.T) {
	assert.Equal(t, "ADEME Base Empreinte", taxonomy.MethodologyFor("FR").FactorSource)
	assert.Equal(t, "UBA (Umweltbundesamt)", taxonomy.MethodologyFor("DE").FactorSource)
	assert.Equal(t, "GHG Protocol emission factors", taxonomy.MethodologyFor("BE").FactorSource)
	assert.Equal(t, "2024", taxonomy.MethodologyFor("FR").Version)
}

func TestDefaultCategories_CoverEveryPoste(t *testing.T) {
	cats, err := taxonomy.DefaultCategories()
	require.NoError(t, err)

	var gotCodes, wantCodes []string
	for _, c := range cats {
		gotCodes = append(gotCodes, c.Code)
		assert.Equal(t, taxonomy.ScopeOfCode(c.Code), c.Scope, c.Code)
	}
	for _, p := range taxonomy.Postes() {
		wantCodes = append(wantCodes, p.Code)
	}
	if diff := cmp.Diff(wantCodes, gotCodes); diff != "" {
		t.Errorf("category codes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCategories_Errors(t *testing.T) {
	_, err := taxonomy.ParseCategories([]byte("categories:\n  - {code: \"1.1\", scope: 4, name: x}\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidScope)

	_, err = taxonomy.ParseCategories([]byte("categories:\n  - {code: \"1.1\", scope: 1, name: a}\n  - {code: \"1.1\", scope: 1, name: b}\n"))
	assert.Error(t, err)

	_, err = taxonomy.ParseCategories([]byte("categories:\n  - {scope: 1}\n"))
	assert.Error(t, err)

	_, err = taxonomy.ParseCategories([]byte("categories: [unclosed"))
	assert.Error(t, err)
}
