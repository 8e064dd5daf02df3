package debugcheck

import (
	"os"
	"path/filepath"
	"testing"

	toolexectesting "github.com/isseis/go-debuginfo-check/internal/toolexec/testing"
	"github.com/stretchr/testify/require"
)

// Canned tool output, trimmed from real file(1) and eu-readelf(1) runs.
const (
	descPIEExecutable   = "ELF 64-bit LSB pie executable, x86-64, version 1 (SYSV), dynamically linked, interpreter /lib64/ld-linux-x86-64.so.2, BuildID[sha1]=3f1c, for GNU/Linux 3.2.0, with debug_info, not stripped\n"
	descPIESharedObject = "ELF 64-bit LSB pie shared object, x86-64, version 1 (SYSV), dynamically linked, with debug_info, not stripped\n"
	descText            = "ASCII text\n"
	descScript          = "POSIX shell script, ASCII text executable\n"

	sectionsWithDebug = `There are 36 section headers, starting at offset 0x3a10:

Section Headers:
[Nr] Name                 Type         Addr             Off      Size     ES Flags Lk Inf Al
[ 0]                      NULL         0000000000000000 00000000 00000000  0        0   0  0
[ 1] .note.gnu.property   NOTE         0000000000000238 00000238 00000020  0 A      0   0  8
[12] .text                PROGBITS     0000000000001040 00001040 00000113  0 AX     0   0 16
[26] .comment             PROGBITS     0000000000000000 00003010 0000002e  1 MS     0   0  1
[27] .debug_aranges       PROGBITS     0000000000000000 0000303e 00000030  0        0   0  1
[28] .debug_info          PROGBITS     0000000000000000 0000306e 000000f5  0        0   0  1
[29] .debug_abbrev        PROGBITS     0000000000000000 00003163 000000a1  0        0   0  1
[30] .debug_line          PROGBITS     0000000000000000 00003204 00000061  0        0   0  1
[31] .debug_str           PROGBITS     0000000000000000 00003265 000000d6  1 MS     0   0  1
[32] .symtab              SYMTAB       0000000000000000 00003340 00000408 24       33  21  8
[33] .strtab              STRTAB       0000000000000000 00003748 000001f2  0        0   0  1
[34] .shstrtab            STRTAB       0000000000000000 0000393a 000000d4  0        0   0  1
`

	sectionsStripped = `There are 28 section headers, starting at offset 0x3148:

Section Headers:
[Nr] Name                 Type         Addr             Off      Size     ES Flags Lk Inf Al
[ 0]                      NULL         0000000000000000 00000000 00000000  0        0   0  0
[12] .text                PROGBITS     0000000000001040 00001040 00000113  0 AX     0   0 16
[26] .comment             PROGBITS     0000000000000000 00003010 0000002e  1 MS     0   0  1
[27] .shstrtab            STRTAB       0000000000000000 0000303e 00000103  0        0   0  1
`

	sectionsWithDebugLink = sectionsWithDebug + "[35] .gnu_debuglink       PROGBITS     0000000000000000 00003a0e 00000010  0        0   0  4\n"

	symbolsWithFile = `
Symbol table [ 6] '.dynsym' contains 7 entries:
 1 local symbol  String table: [ 7] '.dynstr'
  Num:            Value   Size Type    Bind   Vis          Ndx Name
    0: 0000000000000000      0 NOTYPE  LOCAL  DEFAULT    UNDEF
    1: 0000000000000000      0 FUNC    GLOBAL DEFAULT    UNDEF puts@GLIBC_2.2.5 (2)

Symbol table [32] '.symtab' contains 43 entries:
 36 local symbols  String table: [33] '.strtab'
  Num:            Value   Size Type    Bind   Vis          Ndx Name
    0: 0000000000000000      0 NOTYPE  LOCAL  DEFAULT    UNDEF
    1: 0000000000000000      0 FILE    LOCAL  DEFAULT      ABS crtstuff.c
    2: 0000000000001070      0 FUNC    LOCAL  DEFAULT       12 deregister_tm_clones
   20: 0000000000000000      0 FILE    LOCAL  DEFAULT      ABS hello.c
   40: 0000000000001139     22 FUNC    GLOBAL DEFAULT       12 main
`

	symbolsStripped = `
Symbol table [ 6] '.dynsym' contains 7 entries:
 1 local symbol  String table: [ 7] '.dynstr'
  Num:            Value   Size Type    Bind   Vis          Ndx Name
    0: 0000000000000000      0 NOTYPE  LOCAL  DEFAULT    UNDEF
    1: 0000000000000000      0 FUNC    GLOBAL DEFAULT    UNDEF puts@GLIBC_2.2.5 (2)
`
)

// binary describes canned tool output for one path.
type binary struct {
	description string
	sections    string
	symbols     string
}

var (
	unstrippedBinary = binary{descPIESharedObject, sectionsWithDebug, symbolsWithFile}
	strippedBinary   = binary{descPIESharedObject, sectionsStripped, symbolsStripped}
	debugLinkBinary  = binary{descPIESharedObject, sectionsWithDebugLink, symbolsWithFile}
	textFile         = binary{description: descText}
)

// register makes runner answer the file and eu-readelf invocations for path.
func register(runner *toolexectesting.FakeRunner, path string, b binary) {
	runner.On(toolexectesting.Response{Stdout: b.description}, DefaultFileTypeTool, path)
	if b.sections != "" || b.symbols != "" {
		runner.On(toolexectesting.Response{Stdout: b.sections}, DefaultReadelfTool, "-S", path)
		runner.On(toolexectesting.Response{Stdout: b.symbols}, DefaultReadelfTool, "-s", path)
	}
}

// writeFile creates a file under dir and returns its absolute path.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

func newTestWalker(runner *toolexectesting.FakeRunner, opts ...WalkerOption) *Walker {
	return NewWalker(
		NewClassifier(runner, DefaultFileTypeTool),
		NewScanner(runner, DefaultReadelfTool),
		opts...,
	)
}
