package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleWord(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jack", titleWord("jack"))
	assert.Equal(t, "Hearts", titleWord("HEARTS"))
	assert.Equal(t, "Low", titleWord("low"))
	assert.Equal(t, "10", titleWord("10"))
	assert.Equal(t, "", titleWord(""))
}

func TestExecute_EmptyLine(t *testing.T) {
	t.Parallel()

	m := &Model{phase: PhaseGame}
	assert.Nil(t, m.execute("   "))
	assert.Empty(t, m.err)
}

func TestExecuteGame_MalformedCommands(t *testing.T) {
	t.Parallel()

	// 所有用例都在触达网络层之前失败
	tests := []struct {
		name string
		line string
	}{
		{"request missing args", "request 3 Jack"},
		{"request bad seat", "request three Jack Hearts"},
		{"declare wrong arity", "declare low hearts 0 2 4"},
		{"declare bad set", "declare middle hearts 0 2 4 0 2 4"},
		{"declare bad seat", "declare low hearts 0 2 4 0 2 x"},
		{"unknown verb", "shuffle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &Model{phase: PhaseGame}
			m.execute(tt.line)
			assert.NotEmpty(t, m.err, "命令 %q 应报错", tt.line)
		})
	}
}

func TestExecuteMenu_UsageErrors(t *testing.T) {
	t.Parallel()

	m := &Model{phase: PhaseMenu}
	m.execute("create")
	assert.Contains(t, m.err, "usage")

	m = &Model{phase: PhaseMenu}
	m.execute("join 123456")
	assert.Contains(t, m.err, "usage")
}
