package attr

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mock 文件头记录的命令必须与 registry.go 中的 go:generate 一致
func TestMockRegistry_GenerateDirective(t *testing.T) {
	src, err := os.ReadFile("registry.go")
	require.NoError(t, err)
	directive := regexp.MustCompile(`(?m)^//go:generate go run go\.uber\.org/mock/mockgen (.+)$`).FindSubmatch(src)
	require.NotNil(t, directive, "registry.go 缺少 mockgen 指令")
	args := strings.TrimSpace(string(directive[1]))

	mock, err := os.ReadFile("mock_registry_test.go")
	require.NoError(t, err)
	assert.Contains(t, string(mock), "//\tmockgen "+args+"\n")
	assert.Contains(t, args, "-destination=mock_registry_test.go")
	assert.Contains(t, args, "-source=registry.go")
}
