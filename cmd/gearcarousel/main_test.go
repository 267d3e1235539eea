package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGallery struct {
	runErr error
	closed int
}

func (g *fakeGallery) Run() error { return g.runErr }
func (g *fakeGallery) Close() { g.closed++ }

func TestRunAppClosesOnError(t *testing.T) {
	g := &fakeGallery{runErr: errors.New("context lost")}
	assert.Equal(t, 1, runApp(g))
	assert.Equal(t, 1, g.closed)
}

func TestRunAppClosesOnSuccess(t *testing.T) {
	g := &fakeGallery{}
	assert.Equal(t, 0, runApp(g))
	assert.Equal(t, 1, g.closed)
}
