package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucAlexander/NeuroMorph/ast"
)

func layer(name string, width int, activation string, next int64) *ast.Node {
	return &ast.Node{
		ID:         ast.HashName(name),
		Name:       name,
		Kind:       ast.KindLayer,
		Width:      width,
		Activation: activation,
		Next:       next,
	}
}

func TestHashNameDeterministic(t *testing.T) {
	assert.Equal(t, ast.HashName("foo"), ast.HashName("foo"))
	assert.NotEqual(t, ast.HashName("foo"), ast.HashName("bar"))
}

func TestInsertSetsRoot(t *testing.T) {
	a := ast.New()
	in := layer("in", 4, "linear", ast.NoID)
	require.NoError(t, a.Insert(in))
	assert.Equal(t, in.ID, a.Root)
}

func TestInsertDuplicateID(t *testing.T) {
	a := ast.New()
	in := layer("in", 4, "linear", ast.NoID)
	require.NoError(t, a.Insert(in))
	dup := layer("in", 4, "linear", ast.NoID)
	err := a.Insert(dup)
	assert.ErrorIs(t, err, ast.ErrDuplicateID)
}

func buildLinearChain(t *testing.T) *ast.AST {
	t.Helper()
	a := ast.New()
	outID := ast.HashName("out")
	in := layer("in", 4, "linear", outID)
	out := layer("out", 2, "linear", ast.NoID)
	out.Loss = "mse"
	require.NoError(t, a.Insert(in))
	require.NoError(t, a.Insert(out))
	return a
}

func TestLegalLinearChain(t *testing.T) {
	a := buildLinearChain(t)
	assert.NoError(t, a.CheckLegality())
}

func TestLegalityRejectsMissingOutput(t *testing.T) {
	a := ast.New()
	in := layer("in", 4, "linear", ast.HashName("mid"))
	mid := layer("mid", 3, "relu", ast.NoID) // no loss, no successor: illegal
	require.NoError(t, a.Insert(in))
	require.NoError(t, a.Insert(mid))
	err := a.CheckLegality()
	assert.Error(t, err)
}

func TestLegalityRejectsZeroWidth(t *testing.T) {
	a := ast.New()
	in := layer("in", 0, "linear", ast.NoID)
	in.Loss = "mse"
	require.NoError(t, a.Insert(in))
	err := a.CheckLegality()
	assert.ErrorIs(t, err, ast.ErrZeroWidth)
}

func TestLegalityRejectsNextIsRoot(t *testing.T) {
	a := ast.New()
	inID := ast.HashName("in")
	in := layer("in", 4, "linear", ast.HashName("mid"))
	mid := layer("mid", 3, "relu", inID) // back-edge straight to root
	mid.Loss = "mse"
	require.NoError(t, a.Insert(in))
	require.NoError(t, a.Insert(mid))
	err := a.CheckLegality()
	assert.ErrorIs(t, err, ast.ErrNextIsRoot)
}

func TestConvergeBranchesRewiresPath(t *testing.T) {
	a := ast.New()
	in := layer("in", 4, "linear", ast.HashName("sk"))
	sk := layer("sk", 4, "linear", ast.NoID)
	conv := &ast.Node{
		ID:       ast.HashName("j"),
		Name:     "j",
		Kind:     ast.KindConvergence,
		Path:     sk.ID,
		Operator: "additive",
		Next:     ast.NoID,
	}
	require.NoError(t, a.Insert(in))
	require.NoError(t, a.Insert(sk))
	require.NoError(t, a.Insert(conv))
	require.NoError(t, a.ConvergeBranches())
	assert.Equal(t, conv.ID, sk.Next)
}

func TestConvergeBranchesRejectsDanglingPath(t *testing.T) {
	a := ast.New()
	conv := &ast.Node{
		ID:       ast.HashName("j"),
		Name:     "j",
		Kind:     ast.KindConvergence,
		Path:     ast.HashName("nowhere"),
		Operator: "additive",
		Next:     ast.NoID,
	}
	require.NoError(t, a.Insert(conv))
	err := a.ConvergeBranches()
	assert.ErrorIs(t, err, ast.ErrDanglingTarget)
}

func TestLegalityRejectsConvergenceMissingOperator(t *testing.T) {
	a := ast.New()
	in := layer("in", 4, "linear", ast.NoID)
	in.Loss = "mse"
	conv := &ast.Node{
		ID:   ast.HashName("j"),
		Name: "j",
		Kind: ast.KindConvergence,
		Path: in.ID,
		Next: ast.NoID,
	}
	require.NoError(t, a.Insert(in))
	require.NoError(t, a.Insert(conv))
	err := a.CheckLegality()
	assert.ErrorIs(t, err, ast.ErrMissingOperator)
}
