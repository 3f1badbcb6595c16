// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/pkg/pointer"
)

/*
TestPointer covers To, If and Fallback.
*/
func TestPointer(t *testing.T) {
	name := "Demo"
	p := pointer.To(name)
	require.NotNil(t, p)
	*p = "changed"
	assert.Equal(t, "Demo", name, "To copies its argument")

	assert.Nil(t, pointer.If(false, "x"))
	assert.Equal(t, "x", *pointer.If(true, "x"))

	assert.Equal(t, "fallback", pointer.Fallback(nil, "fallback"))
	assert.Equal(t, "changed", pointer.Fallback(p, "fallback"))
}
