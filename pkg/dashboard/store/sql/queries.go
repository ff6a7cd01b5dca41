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

package sql

const SelectUserByLogin = "select-user-by-login"
const SelectUserByEmail = "select-user-by-email"
const SelectUserByGithubLogin = "select-user-by-github-login"
const SelectAllUser = "select-all-user"
const DeleteUser = "delete-user"
const UpdateUserToken = "update-user-token"
const UpdateUserPins = "update-user-pins"
const SelectAcceptedUserByLogin = "select-accepted-user-by-login"
const DeleteAcceptedUser = "delete-accepted-user"

var queries = map[string]map[string]string{
	"sqlite": {
		SelectUserByLogin: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users
WHERE login = $1;
`,
		SelectUserByEmail: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users
WHERE email = $1;
`,
		SelectUserByGithubLogin: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users
WHERE github_login = $1;
`,
		SelectAllUser: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users;
`,
		DeleteUser: `
DELETE FROM users where login = $1;
`,
		UpdateUserToken: `
UPDATE users SET access_token = $1, github_login = $2 WHERE login = $3;
`,
		UpdateUserPins: `
UPDATE users SET pinned_repos = $1 WHERE login = $2;
`,
		SelectAcceptedUserByLogin: `
SELECT id, login, accepted
FROM accepted_users
WHERE login = $1;
`,
		DeleteAcceptedUser: `
DELETE FROM accepted_users where login = $1;
`,
	},
	"postgres": {
		SelectUserByLogin: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users
WHERE login = $1;
`,
		SelectUserByEmail: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users
WHERE email = $1;
`,
		SelectUserByGithubLogin: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users
WHERE github_login = $1;
`,
		SelectAllUser: `
SELECT id, login, name, email, email_verified, avatar_url, providers, created, last_sign_in, secret, access_token, github_login, pinned_repos
FROM users;
`,
		DeleteUser: `
DELETE FROM users where login = $1;
`,
		UpdateUserToken: `
UPDATE users SET access_token = $1, github_login = $2 WHERE login = $3;
`,
		UpdateUserPins: `
UPDATE users SET pinned_repos = $1 WHERE login = $2;
`,
		SelectAcceptedUserByLogin: `
SELECT id, login, accepted
FROM accepted_users
WHERE login = $1;
`,
		DeleteAcceptedUser: `
DELETE FROM accepted_users where login = $1;
`,
	},
}

// Stmt returns the query for the given driver
func Stmt(driver string, key string) string {
	return queries[driver][key]
}
