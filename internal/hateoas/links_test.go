package hateoas

import (
	"reflect"
	"testing"
)

func TestGroupLinks(t *testing.T) {
	got := LinksFor(KindGroup, 12)
	want := []Link{
		{Rel: "self", Href: "/groups/12"},
		{Rel: "members", Href: "/groups/12/members"},
		{Rel: "expenses", Href: "/groups/12/expenses"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LinksFor(group, 12) = %v, want %v", got, want)
	}
}

func TestGroupMemberLinks(t *testing.T) {
	got := LinksFor(KindGroupMembers, 5)
	want := []Link{
		{Rel: "self", Href: "/groups/5/members"},
		{Rel: "group", Href: "/groups/5"},
		{Rel: "expenses", Href: "/groups/5/expenses"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LinksFor(group-members, 5) = %v, want %v", got, want)
	}
}

func TestUserLinks(t *testing.T) {
	got := LinksFor(KindUser, 9)
	if len(got) != 1 || got[0].Rel != "user" || got[0].Href != "/users/9" {
		t.Errorf("LinksFor(user, 9) = %v", got)
	}
}

func TestLinksForUnknownKind(t *testing.T) {
	if got := LinksFor("wallet", 1); got != nil {
		t.Errorf("expected nil for unknown kind, got %v", got)
	}
}

func TestLinksForDeterministic(t *testing.T) {
	first := LinksFor(KindGroup, 77)
	second := LinksFor(KindGroup, 77)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("link sets differ between calls: %v vs %v", first, second)
	}
}

func TestPaginationLinksFirstPage(t *testing.T) {
	got := PaginationLinks("/groups", 10, 0, 15)
	want := []Link{
		{Rel: "current", Href: "/groups?limit=10&offset=0"},
		{Rel: "next", Href: "/groups?limit=10&offset=10"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PaginationLinks first page = %v, want %v", got, want)
	}
}

func TestPaginationLinksLastPage(t *testing.T) {
	got := PaginationLinks("/groups", 10, 10, 15)
	want := []Link{
		{Rel: "current", Href: "/groups?limit=10&offset=10"},
		{Rel: "prev", Href: "/groups?limit=10&offset=0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PaginationLinks last page = %v, want %v", got, want)
	}
}

func TestPaginationLinksPrevClampsToZero(t *testing.T) {
	got := PaginationLinks("/groups", 10, 5, 30)
	var prev string
	for _, l := range got {
		if l.Rel == "prev" {
			prev = l.Href
		}
	}
	if prev != "/groups?limit=10&offset=0" {
		t.Errorf("prev not clamped to zero: %q", prev)
	}
}

func TestPaginationLinksExactBoundary(t *testing.T) {
	// offset+limit == total means the window ends exactly at the last item.
	got := PaginationLinks("/groups", 10, 10, 20)
	for _, l := range got {
		if l.Rel == "next" {
			t.Errorf("unexpected next link at exact boundary: %q", l.Href)
		}
	}
}
