package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hearth/internal/record"
)

func groupDef(id string, createdAt int64, tags ...record.Tag) record.Record {
	all := append(record.Tags{record.NewTag("d", "garden")}, tags...)
	return record.Record{
		ID:        id,
		Author:    "admin",
		CreatedAt: createdAt,
		Kind:      record.KindGroupDefinition,
		Tags:      all,
	}
}

func member(subject string, role record.Role) record.Tag {
	return record.Member{Subject: subject, Role: role}.Tag()
}

var garden = record.Coordinate{Kind: record.KindGroupDefinition, Author: "admin", Identifier: "garden"}

func TestRoster_LatestDefinitionWins(t *testing.T) {
	old := groupDef("aaa", 100, member("alice", record.RoleMember))
	newer := groupDef("bbb", 200, member("bob", record.RoleMember))

	for name, defs := range map[string][]record.Record{
		"in order":  {old, newer},
		"reversed":  {newer, old},
		"duplicate": {old, newer, old, newer},
	} {
		t.Run(name, func(t *testing.T) {
			v := Roster(garden, defs)
			require.True(t, v.Found)
			assert.Equal(t, "bbb", v.Definition.ID)
			require.Len(t, v.Members, 1)
			assert.Equal(t, "bob", v.Members[0].Subject)
		})
	}
}

func TestRoster_TimestampTieBreaksOnSmallerID(t *testing.T) {
	a := groupDef("aaa", 100, member("alice", record.RoleMember))
	b := groupDef("bbb", 100, member("bob", record.RoleMember))

	assert.Equal(t, "aaa", Roster(garden, []record.Record{a, b}).Definition.ID)
	assert.Equal(t, "aaa", Roster(garden, []record.Record{b, a}).Definition.ID)
}

func TestRoster_DuplicateMemberRolePrecedence(t *testing.T) {
	def := groupDef("aaa", 100,
		member("carol", record.RoleMember),
		member("carol", record.RoleAdmin),
		member("carol", record.RoleModerator),
		member("dave", record.RoleEventCreator),
		member("dave", record.RoleMember),
	)

	v := Roster(garden, []record.Record{def})
	require.Len(t, v.Members, 2)
	assert.Equal(t, record.RoleAdmin, v.Members[0].Role, "carol keeps her highest role")
	assert.Equal(t, "carol", v.Members[0].Subject, "first appearance order preserved")
	assert.Equal(t, record.RoleEventCreator, v.Members[1].Role)
}

func TestRoster_IgnoresOtherSlots(t *testing.T) {
	other := record.Record{
		ID: "xxx", Author: "someone-else", CreatedAt: 999,
		Kind: record.KindGroupDefinition,
		Tags: record.Tags{record.NewTag("d", "garden"), member("mallory", record.RoleAdmin)},
	}
	mine := groupDef("aaa", 100, member("alice", record.RoleMember))

	v := Roster(garden, []record.Record{other, mine})
	assert.Equal(t, "aaa", v.Definition.ID, "same identifier under a different author is a different group")
	assert.False(t, v.Contains("mallory"))
}

func TestRoster_EmptyInputIsValid(t *testing.T) {
	v := Roster(garden, nil)
	assert.False(t, v.Found)
	assert.Empty(t, v.Members)
	assert.Equal(t, record.RoleMember, v.RoleOf("anyone"))
}

func TestRoster_AuthorIsImplicitAdmin(t *testing.T) {
	v := Roster(garden, []record.Record{groupDef("aaa", 100, member("alice", record.RoleModerator))})
	assert.Equal(t, record.RoleAdmin, v.RoleOf("admin"))
	assert.Equal(t, record.RoleModerator, v.RoleOf("alice"))
	assert.Equal(t, record.RoleMember, v.RoleOf("stranger"))
}

func TestRoster_NameFallsBackToIdentifier(t *testing.T) {
	unnamed := Roster(garden, []record.Record{groupDef("aaa", 100)})
	assert.Equal(t, "garden", unnamed.Name)

	named := Roster(garden, []record.Record{groupDef("aaa", 100, record.NewTag("name", "Community Garden"))})
	assert.Equal(t, "Community Garden", named.Name)
}

func TestCleanDefinition(t *testing.T) {
	dirty := groupDef("aaa", 100,
		record.NewTag("name", "Garden"),
		member("carol", record.RoleMember),
		member("dave", record.RoleMember),
		member("carol", record.RoleAdmin),
	)

	draft, changed := CleanDefinition(dirty)
	require.True(t, changed)
	assert.Equal(t, record.KindGroupDefinition, draft.Kind)
	assert.Equal(t, 2, draft.Tags.Count("p"))

	members := draft.Tags.Members()
	assert.Equal(t, "carol", members[0].Subject, "carol stays in her original position")
	assert.Equal(t, record.RoleAdmin, members[0].Role, "at her highest role")
	assert.Equal(t, "Garden", draft.Tags.Value("name"), "non-membership tags untouched")

	_, changedAgain := CleanDefinition(record.Record{
		Kind: dirty.Kind, Tags: draft.Tags, Content: dirty.Content,
	})
	assert.False(t, changedAgain, "cleaning is idempotent")
}
