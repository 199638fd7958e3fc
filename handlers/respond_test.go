package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found sentinel", utils.ErrorRecordNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: vendor", utils.ErrorRecordNotFound), http.StatusNotFound},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"duplicate", fmt.Errorf("%w: duplicate mr_id", utils.ErrorDuplicateRecord), http.StatusConflict},
		{"resource in use", fmt.Errorf("%w: customer has sales", utils.ErrorResourceInUse), http.StatusConflict},
		{"invalid adjustment", fmt.Errorf("%w: adjustment exceeds total", utils.ErrorInvalidAdjustment), http.StatusBadRequest},
		{"invalid input", fmt.Errorf("%w: same inventory", utils.ErrorInvalidInput), http.StatusBadRequest},
		{"unknown", fmt.Errorf("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, statusForError(tc.err))
		})
	}
}
