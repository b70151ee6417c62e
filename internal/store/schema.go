package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	problemsTable     = "problems"
	userProblemsTable = "user_problems"
	logsTable         = "logs"
	preferencesTable  = "user_preferences"

	textSize = 2147483647
)

var (
	// ProblemsColumns holds the columns for the "problems" table.
	ProblemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "external_id", Type: field.TypeInt, Unique: true},
		{Name: "title", Type: field.TypeString},
		{Name: "slug", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "tags", Type: field.TypeJSON},
		{Name: "description", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "paid_only", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProblemsTable holds the schema information for the "problems" table.
	ProblemsTable = &schema.Table{
		Name:       problemsTable,
		Columns:    ProblemsColumns,
		PrimaryKey: []*schema.Column{ProblemsColumns[0]},
	}

	// UserProblemsColumns holds the columns for the "user_problems" table.
	UserProblemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "status", Type: field.TypeString, Default: "not_started"},
		{Name: "time_spent", Type: field.TypeInt, Nullable: true},
		{Name: "solved_at", Type: field.TypeTime, Nullable: true},
		{Name: "version", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "problem_id", Type: field.TypeString},
	}
	// UserProblemsTable holds the schema information for the "user_problems" table.
	UserProblemsTable = &schema.Table{
		Name:       userProblemsTable,
		Columns:    UserProblemsColumns,
		PrimaryKey: []*schema.Column{UserProblemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_problems_problems_user_problems",
				Columns:    []*schema.Column{UserProblemsColumns[8]},
				RefColumns: []*schema.Column{ProblemsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "userproblem_user_id_problem_id",
				Unique:  true,
				Columns: []*schema.Column{UserProblemsColumns[1], UserProblemsColumns[8]},
			},
			{
				Name:    "userproblem_time_spent",
				Unique:  false,
				Columns: []*schema.Column{UserProblemsColumns[3]},
			},
		},
	}

	// LogsColumns holds the columns for the "logs" table.
	LogsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "time_spent", Type: field.TypeInt, Default: 0},
		{Name: "status", Type: field.TypeString},
		{Name: "notes", Type: field.TypeString, Size: textSize, Nullable: true},
		{Name: "solution", Type: field.TypeString, Size: textSize, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "expires_at", Type: field.TypeTime, Nullable: true},
		{Name: "user_problem_id", Type: field.TypeString},
	}
	// LogsTable holds the schema information for the "logs" table.
	LogsTable = &schema.Table{
		Name:       logsTable,
		Columns:    LogsColumns,
		PrimaryKey: []*schema.Column{LogsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "logs_user_problems_logs",
				Columns:    []*schema.Column{LogsColumns[7]},
				RefColumns: []*schema.Column{UserProblemsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "log_user_problem_id_created_at",
				Unique:  false,
				Columns: []*schema.Column{LogsColumns[7], LogsColumns[5]},
			},
		},
	}

	// PreferencesColumns holds the columns for the "user_preferences" table.
	PreferencesColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "skip_delete_confirm", Type: field.TypeBool, Default: false},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// PreferencesTable holds the schema information for the "user_preferences" table.
	PreferencesTable = &schema.Table{
		Name:       preferencesTable,
		Columns:    PreferencesColumns,
		PrimaryKey: []*schema.Column{PreferencesColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ProblemsTable,
		UserProblemsTable,
		LogsTable,
		PreferencesTable,
	}
)

func init() {
	UserProblemsTable.ForeignKeys[0].RefTable = ProblemsTable
	LogsTable.ForeignKeys[0].RefTable = UserProblemsTable
}
