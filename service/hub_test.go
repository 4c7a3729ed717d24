package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name     string
	startErr error
	log      *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop "+f.name)
	return nil
}

func TestHub_StartStopOrder(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", log: &log}))
	assert.Error(t, h.Register(&fakeService{name: "a", log: &log}))

	require.NoError(t, h.StartAll())
	h.StopAll()
	h.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestHub_StartFailureRollsBack(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", startErr: boom, log: &log}))

	err := h.StartAll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []string{"start a", "stop a"}, log)
}
