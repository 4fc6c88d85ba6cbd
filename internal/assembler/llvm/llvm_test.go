package llvm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/mondriaan/internal/fault"
	"github.com/retroenv/mondriaan/internal/instruction"
	"github.com/retroenv/mondriaan/internal/options"
	"github.com/retroenv/mondriaan/internal/program"
	"github.com/retroenv/retrogolib/assert"
)

func testProgram() *program.Program {
	prog := program.New()

	end := program.NewUnit()
	end.Emit(instruction.Push, 42)
	end.Emit(instruction.OutNumber, 0)
	prog.Add(end, "block2_block3")

	loop := program.NewUnit()
	loop.Emit(instruction.Duplicate, 0)
	loop.SetJump(loop)
	prog.Add(loop, "block2_block4*")

	entry := program.NewUnit()
	entry.SetDispatch(instruction.Pointer, []*program.Unit{end, loop, end, loop})
	prog.Add(entry, "block1_block2@right-top")
	prog.Entry = entry
	return prog
}

func TestGenerate(t *testing.T) {
	module, err := Generate(testProgram())
	assert.NoError(t, err)
	ir := module.String()

	expected := []string{
		"declare void @mondriaan_runtime_push(i32",
		"declare void @mondriaan_runtime_out_number()",
		"declare i32 @mondriaan_runtime_pointer()",
		"declare i32 @mondriaan_runtime_switch()",
		"declare void @mondriaan_runtime_flush()",
		"define private void @unit0()",
		"call void @mondriaan_runtime_push(i32 42)",
		"musttail call void @unit1()",
		"call i32 @mondriaan_runtime_pointer()",
		"icmp eq i32",
		"label %target0, label %check1",
		"label %target2, label %fallthrough",
		"define i32 @main()",
		"call void @unit2()",
		"ret i32 0",
	}
	for _, s := range expected {
		assert.True(t, strings.Contains(ir, s), s)
	}
	assert.False(t, strings.Contains(ir, "mondriaan_runtime_noop"))
	assert.Equal(t, 3, strings.Count(ir, "icmp eq i32"))
}

func TestGenerateErrors(t *testing.T) {
	t.Run("no entry", func(t *testing.T) {
		_, err := Generate(program.New())
		assert.True(t, fault.IsInternal(err))
	})

	t.Run("branch instruction in body", func(t *testing.T) {
		prog := program.New()
		unit := program.NewUnit()
		unit.Emit(instruction.Switch, 0)
		prog.Add(unit, "")
		prog.Entry = unit

		_, err := Generate(prog)
		assert.True(t, fault.IsInternal(err))
	})

	t.Run("foreign target", func(t *testing.T) {
		prog := program.New()
		unit := program.NewUnit()
		unit.SetJump(program.NewUnit())
		prog.Add(unit, "")
		prog.Entry = unit

		_, err := Generate(prog)
		assert.True(t, fault.IsInternal(err))
	})
}

func TestWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := options.Writer{Source: "dir/hello.png", Comments: true}
	assert.NoError(t, New(testProgram(), opts, buf).Write())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "; Source: hello.png\n; Units: 3\n; Instructions: 3\n; Entry: unit2\n\n"))
	assert.True(t, strings.Contains(out, "define i32 @main()"))
}
