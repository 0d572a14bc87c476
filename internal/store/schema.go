package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const textSize = 2147483647

var (
	// usersColumns holds the columns for the "users" table.
	usersColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "from_online", Type: field.TypeBool},
		{Name: "last_activity", Type: field.TypeInt64},
		{Name: "last_survey", Type: field.TypeString, Size: textSize},
		{Name: "created_at", Type: field.TypeInt64},
	}
	usersTable = &schema.Table{
		Name:       "users",
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	// settingsColumns holds the columns for the "settings" table.
	settingsColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: textSize},
	}
	settingsTable = &schema.Table{
		Name:       "settings",
		Columns:    settingsColumns,
		PrimaryKey: []*schema.Column{settingsColumns[0]},
	}

	// sessionsColumns holds the columns for the "sessions" table.
	sessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_name", Type: field.TypeString},
		{Name: "origin", Type: field.TypeString},
		{Name: "format", Type: field.TypeString},
		{Name: "start_time", Type: field.TypeInt64},
		{Name: "end_time", Type: field.TypeInt64},
		{Name: "survey", Type: field.TypeString, Size: textSize},
	}
	sessionsTable = &schema.Table{
		Name:       "sessions",
		Columns:    sessionsColumns,
		PrimaryKey: []*schema.Column{sessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "session_user_name", Columns: []*schema.Column{sessionsColumns[1]}},
			{Name: "session_origin", Columns: []*schema.Column{sessionsColumns[2]}},
		},
	}

	// interactionsColumns holds the columns for the "interactions" table.
	interactionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "seq", Type: field.TypeInt},
		{Name: "kind", Type: field.TypeString},
		{Name: "question_key", Type: field.TypeString, Size: textSize},
		{Name: "status", Type: field.TypeString},
		{Name: "start_time", Type: field.TypeInt64},
		{Name: "end_time", Type: field.TypeInt64},
		{Name: "responses", Type: field.TypeString, Size: textSize},
	}
	interactionsTable = &schema.Table{
		Name:       "interactions",
		Columns:    interactionsColumns,
		PrimaryKey: []*schema.Column{interactionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "interactions_sessions_interactions",
				Columns:    []*schema.Column{interactionsColumns[1]},
				RefColumns: []*schema.Column{sessionsColumns[0]},
				RefTable:   sessionsTable,
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "interaction_session_id_seq", Unique: true, Columns: []*schema.Column{interactionsColumns[1], interactionsColumns[2]}},
			{Name: "interaction_kind", Columns: []*schema.Column{interactionsColumns[3]}},
		},
	}

	// tables holds all the tables in the schema.
	tables = []*schema.Table{
		usersTable,
		settingsTable,
		sessionsTable,
		interactionsTable,
	}
)
