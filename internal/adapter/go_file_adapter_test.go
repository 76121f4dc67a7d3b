package adapter

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGoFileAdapter_ModulePath(t *testing.T) {
	a := NewLocalGoFileAdapter()

	path, err := a.ModulePath([]byte("module example.com/calc\n\ngo 1.25.1\n"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/calc", path)

	_, err = a.ModulePath([]byte("go 1.25.1\n"))
	assert.Error(t, err)
}

func TestLocalGoFileAdapter_RenamePackage(t *testing.T) {
	a := NewLocalGoFileAdapter()
	src := []byte("// Package calc does math.\npackage calc\n\n// Add adds.\nfunc Add(a, b int) int { return a + b }\n")

	out, err := a.RenamePackage("calc.go", src, "mutant")
	require.NoError(t, err)

	name, err := a.PackageName(out)
	require.NoError(t, err)
	assert.Equal(t, "mutant", name)
	assert.Contains(t, string(out), "// Add adds.")
}

func TestLocalGoFileAdapter_NormalizeTestCode(t *testing.T) {
	a := NewLocalGoFileAdapter()

	tests := []struct {
		name        string
		code        string
		wantPackage string
	}{
		{
			name:        "package clause added",
			code:        "func TestAdd(t *testing.T) {\n\tif Add(1, 2) != 3 {\n\t\tt.Fatal(\"bad\")\n\t}\n}\n",
			wantPackage: "calc",
		},
		{
			name:        "package clause kept",
			code:        "package calc_test\n\nfunc TestAdd(t *testing.T) {\n\tt.Log(\"x\")\n}\n",
			wantPackage: "calc_test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := a.NormalizeTestCode("guut_test.go", "calc", []byte(tt.code))
			require.NoError(t, err)

			name, err := a.PackageName(out)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPackage, name)
			assert.Contains(t, string(out), `import "testing"`)
		})
	}
}

func TestLocalGoFileAdapter_NormalizeTestCodeSyntaxError(t *testing.T) {
	_, err := NewLocalGoFileAdapter().NormalizeTestCode("guut_test.go", "calc", []byte("func TestX(t *testing.T) {"))
	assert.Error(t, err)
}

func TestLocalGoFileAdapter_TestFunctions(t *testing.T) {
	a := NewLocalGoFileAdapter()
	src := `package calc

import "testing"

func TestAdd(t *testing.T) {}
func Test(t *testing.T) {}
func Testify(t *testing.T) {}
func TestMain(m *testing.M) {}
func helper(t *testing.T) {}
func TestNoArgs() {}
`

	file, err := a.Parse(token.NewFileSet(), "x_test.go", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"TestAdd", "Test"}, a.TestFunctions(file))
}

func TestLocalGoFileAdapter_ParseCoverProfile(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "cover.out")
	content := `mode: set
example.com/calc/calc.go:5.24,7.2 1 1
example.com/calc/calc.go:10.32,11.13 1 1
example.com/calc/calc.go:11.13,13.3 1 0
example.com/calc/geometry/geometry.go:5.25,7.2 1 0
`
	require.NoError(t, os.WriteFile(profile, []byte(content), 0o600))

	coverage, err := NewLocalGoFileAdapter().ParseCoverProfile(profile, "example.com/calc")
	require.NoError(t, err)

	calc := coverage.Files["calc.go"]
	assert.Equal(t, []int{5, 6, 7, 10, 11}, calc.ExecutedLines)
	assert.Equal(t, []int{12, 13}, calc.MissingLines)

	geometry := coverage.Files["geometry/geometry.go"]
	assert.Empty(t, geometry.ExecutedLines)
	assert.Equal(t, []int{5, 6, 7}, geometry.MissingLines)

	assert.True(t, coverage.Covers("calc.go", 11, 12))
	assert.False(t, coverage.Covers("calc.go", 12, 13))
}
