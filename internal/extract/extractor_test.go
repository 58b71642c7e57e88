package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantName    string
		wantSummary string
	}{
		{
			name: "public class with summary",
			content: "using System;\n" +
				"/// <summary>\n" +
				"/// Does X\n" +
				"/// </summary>\n" +
				"public class Foo : MonoBehaviour\n" +
				"{\n}\n",
			wantName:    "Foo",
			wantSummary: "Does X",
		},
		{
			name:     "public interface",
			content:  "public interface IService\n{\n}\n",
			wantName: "IService",
		},
		{
			name:     "public enum",
			content:  "public enum Color { Red, Green }\n",
			wantName: "Color",
		},
		{
			name:     "public struct",
			content:  "public struct Point\n{\n}\n",
			wantName: "Point",
		},
		{
			name:     "internal class still yields a name",
			content:  "internal class Hidden\n{\n}\n",
			wantName: "Hidden",
		},
		{
			name:     "no declaration",
			content:  "// just a comment\nnamespace Game\n{\n}\n",
			wantName: "",
		},
		{
			name: "earlier non-public declaration beats later public one",
			content: "class First\n{\n}\n" +
				"public class Second\n{\n}\n",
			wantName: "First",
		},
		{
			name: "multi-line summary joined with spaces",
			content: "/// <summary>\n" +
				"/// first part\n" +
				"/// second part\n" +
				"/// </summary>\n" +
				"public class Multi {}\n",
			wantName:    "Multi",
			wantSummary: "first part second part",
		},
		{
			name:        "summary without declaration",
			content:     "/// <summary>\n/// Floating docs\n/// </summary>\n",
			wantName:    "",
			wantSummary: "Floating docs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.content)
			assert.Equal(t, tt.wantName, info.Name)
			assert.Equal(t, tt.wantSummary, info.Summary)
		})
	}
}

func TestParse_SummaryTruncatedToRunes(t *testing.T) {
	// 120 CJK runes; the limit is 100 runes, not bytes.
	long := strings.Repeat("类", 120)
	content := "/// <summary>\n/// " + long + "\n/// </summary>\npublic class Long {}\n"

	info := Parse(content)
	require.NotEmpty(t, info.Summary)
	assert.Equal(t, 100, len([]rune(info.Summary)))
	assert.Equal(t, strings.Repeat("类", 100), info.Summary)
}

func TestParse_SummaryNewlineFree(t *testing.T) {
	content := "/// <summary>\n/// a\n/// b\n/// c\n/// </summary>\npublic class N {}\n"
	info := Parse(content)
	assert.NotContains(t, info.Summary, "\n")
}

func TestFile_ReadError(t *testing.T) {
	info := File(filepath.Join(t.TempDir(), "missing.cs"))
	assert.Empty(t, info.Name)
	assert.Contains(t, info.Summary, "读取失败")
}

func TestAll_CompleteAndDeterministic(t *testing.T) {
	tmpDir := t.TempDir()

	paths := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		path := filepath.Join(tmpDir, fmt.Sprintf("File%02d.cs", i))
		content := fmt.Sprintf("public class Type%02d {}\n", i)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}
	// One unreadable entry must still get a map slot.
	paths = append(paths, filepath.Join(tmpDir, "gone.cs"))

	sequential := All(context.Background(), paths, 1, nil)
	require.Len(t, sequential, len(paths))

	for _, workers := range []int{2, 4, 8} {
		concurrent := All(context.Background(), paths, workers, nil)
		assert.Equal(t, sequential, concurrent, "workers=%d", workers)
	}

	assert.Equal(t, "Type07", sequential[paths[7]].Name)
	assert.Contains(t, sequential[paths[len(paths)-1]].Summary, "读取失败")
}
