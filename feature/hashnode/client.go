package hashnode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"postsync/core/content"
	"postsync/core/reconcile"

	"github.com/go-resty/resty/v2"
)

const publishPostMutation = `
mutation PublishPost($input: PublishPostInput!) {
  publishPost(input: $input) {
    post {
      id
      slug
      url
    }
  }
}`

const updatePostMutation = `
mutation UpdatePost($input: UpdatePostInput!) {
  updatePost(input: $input) {
    post {
      id
      slug
      url
    }
  }
}`

// GraphQLError is one structured error description from the platform.
type GraphQLError struct {
	Message string `json:"message"`
}

// PublishError reports a rejected or failed publish call, carrying the
// platform's structured errors when it returned any and the raw payload
// otherwise.
type PublishError struct {
	Operation string
	Errors    []GraphQLError
	Body      string
}

func (e *PublishError) Error() string {
	if len(e.Errors) > 0 {
		messages := make([]string, len(e.Errors))
		for i, ge := range e.Errors {
			messages[i] = ge.Message
		}
		return fmt.Sprintf("hashnode %s failed: %s", e.Operation, strings.Join(messages, "; "))
	}
	return fmt.Sprintf("hashnode %s failed: %s", e.Operation, e.Body)
}

// tagInput is the wire shape of one tag.
type tagInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// coverImageInput wraps the optional cover image URL.
type coverImageInput struct {
	CoverImageURL string `json:"coverImageURL"`
}

// postInput carries the fields shared by both mutations. ID is only set
// for updates.
type postInput struct {
	ID                string           `json:"id,omitempty"`
	PublicationID     string           `json:"publicationId"`
	Title             string           `json:"title"`
	Slug              string           `json:"slug"`
	ContentMarkdown   string           `json:"contentMarkdown"`
	Tags              []tagInput       `json:"tags"`
	CoverImageOptions *coverImageInput `json:"coverImageOptions,omitempty"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type postPayload struct {
	Post struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
		URL  string `json:"url"`
	} `json:"post"`
}

type graphqlResponse struct {
	Data struct {
		PublishPost *postPayload `json:"publishPost"`
		UpdatePost  *postPayload `json:"updatePost"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// Client publishes documents to a single Hashnode publication.
// It implements reconcile.Publisher.
type Client struct {
	http          *resty.Client
	publicationID string
}

// NewClient creates a Hashnode client from cfg.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}

	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Authorization", cfg.AccessToken).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient, publicationID: cfg.PublicationID}
}

// Create publishes doc as a new post and returns the platform identity.
func (c *Client) Create(ctx context.Context, doc content.Document) (reconcile.Remote, error) {
	return c.mutate(ctx, "publishPost", publishPostMutation, c.input(doc, ""))
}

// Update republishes doc over the post identified by id.
func (c *Client) Update(ctx context.Context, doc content.Document, id string) (reconcile.Remote, error) {
	return c.mutate(ctx, "updatePost", updatePostMutation, c.input(doc, id))
}

func (c *Client) input(doc content.Document, id string) postInput {
	in := postInput{
		ID:              id,
		PublicationID:   c.publicationID,
		Title:           doc.Attributes.Title,
		Slug:            doc.Slug,
		ContentMarkdown: doc.Content,
		Tags:            make([]tagInput, 0, len(doc.Attributes.Tags)),
	}
	for _, tag := range doc.Attributes.Tags {
		in.Tags = append(in.Tags, tagInput{Name: tag.Name, Slug: tag.Slug})
	}
	if doc.Attributes.CoverImageURL != "" {
		in.CoverImageOptions = &coverImageInput{CoverImageURL: doc.Attributes.CoverImageURL}
	}
	return in
}

func (c *Client) mutate(ctx context.Context, operation, query string, in postInput) (reconcile.Remote, error) {
	var out graphqlResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(graphqlRequest{Query: query, Variables: map[string]any{"input": in}}).
		SetResult(&out).
		Post("")
	if err != nil {
		return reconcile.Remote{}, &PublishError{Operation: operation, Body: err.Error()}
	}
	if resp.IsError() {
		return reconcile.Remote{}, &PublishError{Operation: operation, Body: resp.String()}
	}

	// The platform signals rejection through the errors list, HTTP 200
	// notwithstanding.
	if len(out.Errors) > 0 {
		return reconcile.Remote{}, &PublishError{Operation: operation, Errors: out.Errors, Body: resp.String()}
	}

	payload := out.Data.PublishPost
	if operation == "updatePost" {
		payload = out.Data.UpdatePost
	}
	if payload == nil {
		return reconcile.Remote{}, &PublishError{Operation: operation, Body: resp.String()}
	}

	return reconcile.Remote{
		ID:   payload.Post.ID,
		Slug: payload.Post.Slug,
		URL:  payload.Post.URL,
	}, nil
}
