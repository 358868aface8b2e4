package render

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMissingVariable is returned when a required variable is empty.
var ErrMissingVariable = errors.New("missing required template variable")

// Variables is a page ready to render. Each variant owns the fields its
// skeleton uses and declares which of them must be set.
type Variables interface {
	Template() TemplateType
	Values() map[string]string
	Required() []string
}

// Chrome is shared by every variant.
type Chrome struct {
	Title       string
	CSSPath     string
	JSPath      string
	Favicon     string
	HomeLink    string
	Navigation  string
	Footer      string
	HeadScripts string
}

func (c Chrome) values() map[string]string {
	return map[string]string{
		"title":        c.Title,
		"css_path":     c.CSSPath,
		"js_path":      c.JSPath,
		"favicon":      c.Favicon,
		"home_link":    c.HomeLink,
		"navigation":   c.Navigation,
		"footer":       c.Footer,
		"head_scripts": c.HeadScripts,
	}
}

var chromeRequired = []string{"title", "css_path", "js_path", "navigation"}

func required(extra ...string) []string { return slices.Concat(chromeRequired, extra) }

// PageVars renders a general page or the site index.
type PageVars struct {
	Chrome
	Content string
	Sidebar string
	Topics  string
}

func (PageVars) Template() TemplateType { return TemplatePage }
func (PageVars) Required() []string     { return required("content") }

func (v PageVars) Values() map[string]string {
	m := v.Chrome.values()
	m["content"] = v.Content
	m["sidebar"] = v.Sidebar
	m["topics"] = v.Topics
	return m
}

// ArticleVars renders a document inside a content folder.
type ArticleVars struct {
	Chrome
	Content    string
	Breadcrumb string
	Meta       string
}

func (ArticleVars) Template() TemplateType { return TemplateArticle }
func (ArticleVars) Required() []string     { return required("content", "breadcrumb") }

func (v ArticleVars) Values() map[string]string {
	m := v.Chrome.values()
	m["content"] = v.Content
	m["breadcrumb"] = v.Breadcrumb
	m["meta"] = v.Meta
	return m
}

// TopicVars renders the list of documents tagged with one topic.
type TopicVars struct {
	Chrome
	Heading     string
	ArticleList string
}

func (TopicVars) Template() TemplateType { return TemplateTopic }
func (TopicVars) Required() []string     { return required("heading", "article_list") }

func (v TopicVars) Values() map[string]string {
	m := v.Chrome.values()
	m["heading"] = v.Heading
	m["article_list"] = v.ArticleList
	return m
}

// CollectionVars renders the index page of a content folder.
type CollectionVars struct {
	Chrome
	Heading     string
	Intro       string
	ArticleList string
}

func (CollectionVars) Template() TemplateType { return TemplateCollection }

// Required lets an intro stand in for the article list, so a folder that
// holds only its index document still renders.
func (v CollectionVars) Required() []string {
	if v.Intro != "" {
		return required("heading")
	}
	return required("heading", "article_list")
}

func (v CollectionVars) Values() map[string]string {
	m := v.Chrome.values()
	m["heading"] = v.Heading
	m["intro"] = v.Intro
	m["article_list"] = v.ArticleList
	return m
}

// RenderVariables checks the variant's required fields and renders it.
func RenderVariables(v Variables) (string, error) {
	values := v.Values()
	for _, key := range v.Required() {
		if values[key] == "" {
			return "", fmt.Errorf("%w: %s template needs %q", ErrMissingVariable, v.Template(), key)
		}
	}
	return Render(v.Template(), values), nil
}
