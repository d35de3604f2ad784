package tfidx

import (
	"reflect"
	"testing"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	got := Paginate(items, 3)
	want := [][]int{{1, 2, 3}, {4, 5, 6}, {7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paginate() = %v, want %v", got, want)
	}
}

func TestPaginateEmpty(t *testing.T) {
	if got := Paginate([]int{}, 3); got != nil {
		t.Errorf("Paginate(empty) = %v, want nil", got)
	}
}

func TestPaginateNonPositivePageSize(t *testing.T) {
	if got := Paginate([]int{1, 2}, 0); got != nil {
		t.Errorf("Paginate(pageSize=0) = %v, want nil", got)
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	got := Paginate([]int{1, 2, 3, 4}, 2)
	want := [][]int{{1, 2}, {3, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paginate() = %v, want %v", got, want)
	}
}
