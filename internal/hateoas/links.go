package hateoas

import "fmt"

// Link is a named relation pointing at a resource. Links are computed per
// response and never persisted.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Resource kinds accepted by LinksFor.
const (
	KindGroup        = "group"
	KindGroupMembers = "group-members"
	KindUser         = "user"
)

// LinksFor returns the relation set for a resource. Pure and deterministic:
// the same kind and id always produce the same links in the same order.
func LinksFor(kind string, id int64) []Link {
	switch kind {
	case KindGroup:
		return []Link{
			{Rel: "self", Href: fmt.Sprintf("/groups/%d", id)},
			{Rel: "members", Href: fmt.Sprintf("/groups/%d/members", id)},
			{Rel: "expenses", Href: fmt.Sprintf("/groups/%d/expenses", id)},
		}
	case KindGroupMembers:
		return []Link{
			{Rel: "self", Href: fmt.Sprintf("/groups/%d/members", id)},
			{Rel: "group", Href: fmt.Sprintf("/groups/%d", id)},
			{Rel: "expenses", Href: fmt.Sprintf("/groups/%d/expenses", id)},
		}
	case KindUser:
		return []Link{
			{Rel: "user", Href: fmt.Sprintf("/users/%d", id)},
		}
	default:
		return nil
	}
}

// PaginationLinks builds the current/prev/next set for a windowed listing.
// prev appears only when there is something before the window, next only
// when the assembled result extends past it.
func PaginationLinks(path string, limit, offset, total int) []Link {
	links := []Link{
		{Rel: "current", Href: fmt.Sprintf("%s?limit=%d&offset=%d", path, limit, offset)},
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, Link{Rel: "prev", Href: fmt.Sprintf("%s?limit=%d&offset=%d", path, limit, prev)})
	}
	if offset+limit < total {
		links = append(links, Link{Rel: "next", Href: fmt.Sprintf("%s?limit=%d&offset=%d", path, limit, offset+limit)})
	}
	return links
}
