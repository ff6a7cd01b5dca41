// Copyright 2019 Laszlo Fogas
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ddl

const createTableUsers = "create-table-users"
const addGithubLoginColumnToUsersTable = "add-github-login-column-to-users-table"
const addPinnedReposColumnToUsersTable = "add-pinned-repos-column-to-users-table"
const defaultValueForPinnedRepos = "default-value-for-pinned-repos"
const createTableAcceptedUsers = "create-table-accepted-users"
const createTableApplications = "create-table-applications"
const createTableWaitlist = "create-table-waitlist"
const createTableEnterpriseContacts = "create-table-enterprise-contacts"

type migration struct {
	name string
	stmt string
}

var migrations = map[string][]migration{
	"sqlite": {
		{
			name: createTableUsers,
			stmt: `
CREATE TABLE IF NOT EXISTS users (
id             INTEGER PRIMARY KEY AUTOINCREMENT,
login          TEXT,
name           TEXT,
email          TEXT,
email_verified BOOLEAN,
avatar_url     TEXT,
providers      TEXT,
created        INTEGER,
last_sign_in   INTEGER,
secret         TEXT,
access_token   TEXT,
UNIQUE(login)
);
`,
		},
		{
			name: addGithubLoginColumnToUsersTable,
			stmt: `ALTER TABLE users ADD COLUMN github_login TEXT default '';`,
		},
		{
			name: addPinnedReposColumnToUsersTable,
			stmt: `ALTER TABLE users ADD COLUMN pinned_repos TEXT;`,
		},
		{
			name: defaultValueForPinnedRepos,
			stmt: `update users set pinned_repos='[]' where pinned_repos is null;`,
		},
		{
			name: createTableAcceptedUsers,
			stmt: `
CREATE TABLE IF NOT EXISTS accepted_users (
id       INTEGER PRIMARY KEY AUTOINCREMENT,
login    TEXT,
accepted INTEGER,
UNIQUE(login)
);
`,
		},
		{
			name: createTableApplications,
			stmt: `
CREATE TABLE IF NOT EXISTS applications (
id                  INTEGER PRIMARY KEY AUTOINCREMENT,
name                TEXT,
email               TEXT,
location            TEXT,
resume_url          TEXT,
resume_file_name    TEXT,
resume_content_type TEXT,
resume_size         INTEGER,
created             INTEGER
);
`,
		},
		{
			name: createTableWaitlist,
			stmt: `
CREATE TABLE IF NOT EXISTS waitlist (
id       INTEGER PRIMARY KEY AUTOINCREMENT,
name     TEXT,
email    TEXT,
location TEXT,
use_case TEXT,
company  TEXT,
position TEXT,
created  INTEGER
);
`,
		},
		{
			name: createTableEnterpriseContacts,
			stmt: `
CREATE TABLE IF NOT EXISTS enterprise_contacts (
id        INTEGER PRIMARY KEY AUTOINCREMENT,
name      TEXT,
email     TEXT,
company   TEXT,
title     TEXT,
phone     TEXT,
team_size TEXT,
message   TEXT,
status    TEXT,
created   INTEGER
);
`,
		},
	},
	"postgres": {
		{
			name: createTableUsers,
			stmt: `
CREATE TABLE IF NOT EXISTS users (
id             SERIAL,
login          TEXT,
name           TEXT,
email          TEXT,
email_verified BOOLEAN,
avatar_url     TEXT,
providers      TEXT,
created        INTEGER,
last_sign_in   INTEGER,
secret         TEXT,
access_token   TEXT,
UNIQUE(login)
);
`,
		},
		{
			name: addGithubLoginColumnToUsersTable,
			stmt: `ALTER TABLE users ADD COLUMN github_login TEXT default '';`,
		},
		{
			name: addPinnedReposColumnToUsersTable,
			stmt: `ALTER TABLE users ADD COLUMN pinned_repos TEXT;`,
		},
		{
			name: defaultValueForPinnedRepos,
			stmt: `update users set pinned_repos='[]' where pinned_repos is null;`,
		},
		{
			name: createTableAcceptedUsers,
			stmt: `
CREATE TABLE IF NOT EXISTS accepted_users (
id       SERIAL,
login    TEXT,
accepted INTEGER,
UNIQUE(login)
);
`,
		},
		{
			name: createTableApplications,
			stmt: `
CREATE TABLE IF NOT EXISTS applications (
id                  SERIAL,
name                TEXT,
email               TEXT,
location            TEXT,
resume_url          TEXT,
resume_file_name    TEXT,
resume_content_type TEXT,
resume_size         INTEGER,
created             INTEGER
);
`,
		},
		{
			name: createTableWaitlist,
			stmt: `
CREATE TABLE IF NOT EXISTS waitlist (
id       SERIAL,
name     TEXT,
email    TEXT,
location TEXT,
use_case TEXT,
company  TEXT,
position TEXT,
created  INTEGER
);
`,
		},
		{
			name: createTableEnterpriseContacts,
			stmt: `
CREATE TABLE IF NOT EXISTS enterprise_contacts (
id        SERIAL,
name      TEXT,
email     TEXT,
company   TEXT,
title     TEXT,
phone     TEXT,
team_size TEXT,
message   TEXT,
status    TEXT,
created   INTEGER
);
`,
		},
	},
}
