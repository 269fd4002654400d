package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocUnknownHookIsEmpty(t *testing.T) {
	assert.Empty(t, Doc("no-such-hook"))
}

func TestDocEveryBuiltinDocumented(t *testing.T) {
	for _, name := range Keys() {
		assert.NotEmpty(t, Doc(name), "builtin %q has no documentation", name)
	}
}

func TestRenderDocFlattensMarkdown(t *testing.T) {
	rendered := renderDoc(`# sample-hook

Checks a thing using ` + "`some tool`" + `.

- First point.
- Second point.`)

	assert.Contains(t, rendered, "SAMPLE-HOOK")
	assert.Contains(t, rendered, "Checks a thing using some tool .")
	assert.Contains(t, rendered, "  - First point.")
	assert.Contains(t, rendered, "  - Second point.")
}
