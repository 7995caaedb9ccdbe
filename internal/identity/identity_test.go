package identity

import (
	"context"
	"testing"

	"group_service/internal/apperrors"
	"group_service/internal/repositories/sqlstore"
)

// fakeQuerier serves canned user rows the way the store hands them back:
// ids as int64, text columns as strings.
type fakeQuerier struct {
	sqlstore.Querier
	users []sqlstore.Row
}

func (f *fakeQuerier) Select(ctx context.Context, schema, table string, filters map[string]any) ([]sqlstore.Row, error) {
	if schema != "user_service_db" || table != "users" {
		return nil, apperrors.PersistenceOp("select", schema+"."+table, nil)
	}
	result := make([]sqlstore.Row, 0)
	for _, row := range f.users {
		match := true
		for col, want := range filters {
			if row[col] != want {
				match = false
				break
			}
		}
		if match {
			result = append(result, row)
		}
	}
	return result, nil
}

func testResolver() *SQLResolver {
	return NewSQLResolver(&fakeQuerier{users: []sqlstore.Row{
		{
			"id":                  int64(7),
			"email":               "ada@x.com",
			"name":                "Ada",
			"currency_preference": "EUR",
			"profile_pic":         "pics/ada.png",
		},
	}})
}

func TestResolveUserID(t *testing.T) {
	resolver := testResolver()

	id, err := resolver.ResolveUserID(context.Background(), "ada@x.com")
	if err != nil {
		t.Fatalf("ResolveUserID failed: %v", err)
	}
	if id != 7 {
		t.Errorf("expected id 7, got %d", id)
	}
}

func TestResolveUserIDNotFound(t *testing.T) {
	resolver := testResolver()

	_, err := resolver.ResolveUserID(context.Background(), "ghost@x.com")
	if err == nil {
		t.Fatal("expected error for unknown email")
	}
	if kind, ok := apperrors.KindOf(err); !ok || kind != apperrors.NotFound {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestResolveUserProfile(t *testing.T) {
	resolver := testResolver()

	profile, err := resolver.ResolveUserProfile(context.Background(), 7)
	if err != nil {
		t.Fatalf("ResolveUserProfile failed: %v", err)
	}
	want := Profile{ID: 7, Email: "ada@x.com", Name: "Ada", CurrencyPreference: "EUR", ProfilePic: "pics/ada.png"}
	if profile != want {
		t.Errorf("profile mismatch: got %+v, want %+v", profile, want)
	}
}

func TestResolveUserProfileNotFound(t *testing.T) {
	resolver := testResolver()

	_, err := resolver.ResolveUserProfile(context.Background(), 404)
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if kind, ok := apperrors.KindOf(err); !ok || kind != apperrors.NotFound {
		t.Errorf("expected not-found kind, got %v", err)
	}
}
