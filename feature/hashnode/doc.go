// Package hashnode implements the publishing platform client against the
// Hashnode GraphQL API.
//
// The client exposes exactly two operations, Create (PublishPost) and
// Update (UpdatePost), matching the reconcile.Publisher contract. Both are
// single-attempt with a bounded request timeout. A response carrying a
// non-empty errors list is a failure even when the HTTP status is 200;
// transport failures and non-2xx responses are wrapped into the same
// PublishError shape with whatever payload came back.
package hashnode
