// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.
package slicest

import (
	"reflect"
	"strconv"
	"testing"
)

func TestMapAndMapX(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("Map = %v", got)
	}

	nums, err := MapX([]string{"4", "5"}, strconv.Atoi)
	if err != nil || !reflect.DeepEqual(nums, []int{4, 5}) {
		t.Fatalf("MapX = %v, %v", nums, err)
	}
	if _, err := MapX([]string{"4", "x"}, strconv.Atoi); err == nil {
		t.Fatalf("expected MapX to stop on the bad element")
	}
}

func TestFilterDoesNotAlias(t *testing.T) {
	in := []int{1, 2, 3, 4}
	even := Filter(in, func(n int) bool { return n%2 == 0 })
	if !reflect.DeepEqual(even, []int{2, 4}) {
		t.Fatalf("Filter = %v", even)
	}
	even[0] = 99
	if in[1] != 2 {
		t.Fatalf("Filter result aliases its input")
	}
	if got := Filter([]int(nil), func(int) bool { return true }); got == nil || len(got) != 0 {
		t.Fatalf("Filter of nil should be empty and non-nil, got %#v", got)
	}
}

func TestToMapFindReduce(t *testing.T) {
	type pair struct{ k, v string }
	in := []pair{{"a", "1"}, {"b", "2"}, {"a", "3"}}

	m := ToMap(in, func(p pair) (string, string) { return p.k, p.v })
	if len(m) != 2 || m["a"] != "3" || m["b"] != "2" {
		t.Fatalf("ToMap = %v", m)
	}

	p, ok := Find(in, func(p pair) bool { return p.k == "b" })
	if !ok || p.v != "2" {
		t.Fatalf("Find = %v, %v", p, ok)
	}
	if _, ok := Find(in, func(p pair) bool { return p.k == "z" }); ok {
		t.Fatalf("Find should miss")
	}

	sum := ReduceD([]int{1, 2, 3}, 10, func(n, acc int) int { return acc + n })
	if sum != 16 {
		t.Fatalf("ReduceD = %d", sum)
	}
}
