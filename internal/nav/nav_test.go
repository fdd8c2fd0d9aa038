package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItems_Order(t *testing.T) {
	got := Items("")
	var labels []string
	for _, it := range got {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{
		"Dashboard", "Analytics", "User Data", "User Lists", "Upload File", "Create User",
		"Account", "Dataset Access", "Report Generation", "View Data", "Notifications",
		"Help", "Contacts", "Privacy Policy", "Terms and Conditions", "Logout",
	}, labels)
}

func TestItems_Active(t *testing.T) {
	got := Items("/analytics")
	assert.False(t, got[0].Active)
	assert.True(t, got[1].Active)

	// the shared slice is never mutated
	assert.False(t, Items("")[1].Active)
}

func TestPlaceholders(t *testing.T) {
	ph := Placeholders()
	assert.Len(t, ph, 10)
	for _, it := range ph {
		assert.False(t, it.Implemented)
		assert.False(t, it.IsButton())
	}
	assert.True(t, Items("")[4].IsButton())
}
