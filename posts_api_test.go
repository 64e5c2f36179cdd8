package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"postsapi/storage/models"
	"strings"
)

type deleteResponse struct {
	Message string      `json:"message"`
	Deleted models.Post `json:"deleted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *APISuite) TestCreateAndGetPost() {
	resp := s.do(&s.client, http.MethodPost, "/api/posts", `{"title": "Third post", "content": "Hello"}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created models.Post
	s.decode(resp, &created)
	s.Require().Equal(models.Post{Id: 3, Title: "Third post", Content: "Hello"}, created)

	resp = s.do(&s.client, http.MethodGet, "/api/posts/3", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var got models.Post
	s.decode(resp, &got)
	s.Require().Equal(created, got)
}

func (s *APISuite) TestListPosts() {
	s.do(&s.client, http.MethodPost, "/api/posts", `{"title": "Another", "content": "Third one"}`)

	resp := s.do(&s.client, http.MethodGet, "/api/posts?sort=id&direction=desc", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var posts []models.Post
	s.decode(resp, &posts)
	s.Require().Len(posts, 3)
	s.Require().Equal([]int{3, 2, 1}, []int{posts[0].Id, posts[1].Id, posts[2].Id})

	resp = s.do(&s.client, http.MethodGet, "/api/posts?q=THIRD&sort=title", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	posts = nil
	s.decode(resp, &posts)
	s.Require().Len(posts, 1)
	s.Require().Equal("Another", posts[0].Title)
}

func (s *APISuite) TestListPostsInvalidSort() {
	resp := s.do(&s.rawClient, http.MethodGet, "/api/posts?sort=bogus", "")
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
	var body errorResponse
	s.decode(resp, &body)
	s.Require().Contains(body.Error, "bogus")
	s.Require().Contains(body.Error, "title, content, id")
}

func (s *APISuite) TestSearchPosts() {
	resp := s.do(&s.client, http.MethodGet, "/api/posts/search", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var posts []models.Post
	s.decode(resp, &posts)
	s.Require().Equal(models.DefaultPosts(), posts)

	resp = s.do(&s.client, http.MethodGet, "/api/posts/search?title=first", "")
	posts = nil
	s.decode(resp, &posts)
	s.Require().Equal(models.DefaultPosts()[:1], posts)
}

func (s *APISuite) TestUpdatePost() {
	resp := s.do(&s.client, http.MethodPut, "/api/posts/2", `{"content": "  Rewritten  "}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var post models.Post
	s.decode(resp, &post)
	s.Require().Equal(models.Post{Id: 2, Title: "Second post", Content: "Rewritten"}, post)

	resp = s.do(&s.client, http.MethodPut, "/api/posts/2", `{"title": "  "}`)
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
	var body errorResponse
	s.decode(resp, &body)
	s.Require().Equal("Title cannot be empty", body.Error)

	resp = s.do(&s.client, http.MethodPut, "/api/posts/9", `{"title": "x"}`)
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestDeletePost() {
	resp := s.do(&s.client, http.MethodDelete, "/api/posts/1", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var body deleteResponse
	s.decode(resp, &body)
	s.Require().Equal("Post deleted successfully", body.Message)
	s.Require().Equal(models.DefaultPosts()[0], body.Deleted)

	resp = s.do(&s.client, http.MethodDelete, "/api/posts/1", "")
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestCreatePostRejectsNonJSON() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/posts", strings.NewReader("title=a"))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.rawClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusUnsupportedMediaType, resp.StatusCode)
}

func (s *APISuite) TestPostsSurviveRestart() {
	resp := s.do(&s.client, http.MethodPost, "/api/posts", `{"title": "Durable", "content": "Still here"}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created models.Post
	s.decode(resp, &created)

	data, err := os.ReadFile(s.cfg.DataFile)
	s.Require().NoError(err)
	s.Require().Contains(string(data), `"title": "Durable"`)

	s.server.Close()
	s.server = httptest.NewServer(s.startServer().Handler)

	resp = s.do(&s.client, http.MethodGet, "/api/posts", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var posts []models.Post
	s.decode(resp, &posts)
	s.Require().Len(posts, 3)
	s.Require().Equal(created, posts[2])
}
