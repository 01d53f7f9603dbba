package maincmd_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/ondrejsv/ippcode22/internal/filetest"
	"github.com/ondrejsv/ippcode22/internal/maincmd"
	"github.com/ondrejsv/ippcode22/lang/machine"
)

var testUpdateRunTests = flag.Bool("test.update-run-tests", false, "If set, replace expected interpret run results with actual results.")

// TestRun executes every testdata/in/*.ipp22xml program through the full
// CLI entrypoint and compares stdout against its golden testdata/out file,
// the way the teacher's scanner/parser tests compare against golden
// .nen-derived fixtures.
func TestRun(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".ipp22xml") {
		t.Run(fi.Name(), func(t *testing.T) {
			var out, errOut bytes.Buffer
			stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &errOut}
			c := maincmd.Cmd{}
			args := []string{"interpret", "--source=" + filepath.Join(srcDir, fi.Name())}
			c.Main(args, stdio)
			filetest.DiffOutput(t, fi, out.String(), resultDir, testUpdateRunTests)
		})
	}
}

func TestMainFlagHandling(t *testing.T) {
	cases := []struct {
		desc     string
		args     []string
		stdin    string
		wantCode int
	}{
		{"help alone", []string{"interpret", "--help"}, "", int(mainer.Success)},
		{"help with source", []string{"interpret", "--help", "--source=x"}, "", machine.CodeCLIMisuse},
		{"neither source nor input", []string{"interpret"}, "", machine.CodeCLIMisuse},
		{"missing source file", []string{"interpret", "--source=/does/not/exist.xml"}, "", machine.CodeFileOpen},
		{"missing input file", []string{"interpret", "--input=/does/not/exist.xml"}, "", machine.CodeFileOpen},
		{"repeated flag", []string{"interpret", "--source=a", "--source=b"}, "", machine.CodeCLIMisuse},
		{"repeated flag via alias", []string{"interpret", "-h", "--help"}, "", machine.CodeCLIMisuse},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			var out, errOut bytes.Buffer
			stdio := mainer.Stdio{Stdin: strings.NewReader(c.stdin), Stdout: &out, Stderr: &errOut}
			cmd := maincmd.Cmd{}
			code := cmd.Main(c.args, stdio)
			require.Equal(t, mainer.ExitCode(c.wantCode), code)
		})
	}
}

func TestRunDivisionByZeroExitCode(t *testing.T) {
	src := `<program><instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@q</arg1></instruction>` +
		`<instruction order="2" opcode="IDIV"><arg1 type="var">GF@q</arg1><arg2 type="int">1</arg2><arg3 type="int">0</arg3></instruction></program>`
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.xml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &errOut}
	cmd := maincmd.Cmd{}
	code := cmd.Main([]string{"interpret", "--source=" + path}, stdio)
	require.Equal(t, mainer.ExitCode(machine.CodeBadValue), code)
	require.NotEmpty(t, errOut.String())
}
