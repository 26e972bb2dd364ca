package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm()
	assert.Equal(t, vo.StatusOpen, f.Status)
	assert.Equal(t, vo.PriorityMedium, f.Priority)
	assert.Nil(t, f.CategoryID)
}

func TestFormFrom(t *testing.T) {
	cat := int64(3)
	tk := Ticket{
		ID:          9,
		Title:       "Printer down",
		Description: "Floor 2",
		Status:      vo.StatusInProgress,
		Priority:    vo.PriorityHigh,
		UserID:      5,
		CategoryID:  &cat,
	}

	f := FormFrom(tk)
	assert.Equal(t, "Printer down", f.Title)
	assert.Equal(t, vo.StatusInProgress, f.Status)
	assert.Equal(t, int64(5), f.UserID)
	assert.Equal(t, &cat, f.CategoryID)
}
