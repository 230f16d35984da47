// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package lru

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLRUAdd(t *testing.T) {
	cache := NewBasicLRU[int, int](128)

	for i := 0; i < 256; i++ {
		cache.Add(i, i)
	}
	require.Equal(t, 128, cache.Len())

	for i := 0; i < 128; i++ {
		_, ok := cache.Get(i)
		assert.False(t, ok, "key %d should have been evicted", i)
	}
	for i := 128; i < 256; i++ {
		v, ok := cache.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestBasicLRURecency(t *testing.T) {
	cache := NewBasicLRU[string, int](2)
	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Get("a")
	ek, ev, evicted := cache.Add3("c", 3)

	require.True(t, evicted)
	assert.Equal(t, "b", ek)
	assert.Equal(t, 2, ev)
	assert.Equal(t, []string{"a", "c"}, cache.Keys())

	k, _, ok := cache.GetOldest()
	require.True(t, ok)
	assert.Equal(t, "a", k)

	assert.True(t, cache.Remove("a"))
	assert.False(t, cache.Remove("a"))
	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheConcurrent(t *testing.T) {
	cache := NewCache[string, []byte](16)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%32)
				cache.Add(key, []byte(key))
				if v, ok := cache.Get(key); ok {
					assert.Equal(t, key, string(v))
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, cache.Len(), 16)
}

func TestSizeConstrainedCache(t *testing.T) {
	cache := NewSizeConstrainedCache[string, []byte](10)
	assert.False(t, cache.Add("a", make([]byte, 4)))
	assert.False(t, cache.Add("b", make([]byte, 4)))
	assert.True(t, cache.Add("c", make([]byte, 4)))

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, uint64(8), cache.Size())
}
