package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendNoticeTask(t *testing.T) {
	notice := SendNotice{Email: "a@nitt.edu", Name: "Asha", Kind: NoticeWelcome}

	tk, err := NewSendNoticeTask(notice)
	require.NoError(t, err)
	assert.Equal(t, SendNoticeTaskName, tk.Type())

	var decoded SendNotice
	require.NoError(t, json.Unmarshal(tk.Payload(), &decoded))
	assert.Equal(t, notice, decoded)
}
