package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardTemplatePostsLayout(t *testing.T) {
	page, err := embeddedTemplates.ReadFile("templates/dashboard.html")
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, `draggable="true"`)
	assert.Contains(t, html, `fetch(base + "/layout"`)
	assert.Contains(t, html, `JSON.stringify({ layouts: layouts })`)
	assert.Contains(t, html, "layouts.lg")
}
