package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nekosui/petbot/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input", fmt.Errorf("%w: empty user id", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidRequestError},
		{"unknown rating", domain.ErrUnknownRating, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"corrupt state", domain.ErrCorruptState, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
