// Package site materializes a classified source folder into a static site
// under {source}/.moss/site.
//
// A run is a fixed sequence of stages: prepare the output tree, parse
// documents, copy assets, render pages, write the index and persist the
// build report. Failures that prevent any output (the output directory,
// the stylesheet, index.html) abort the run; failures confined to one
// document or one asset become warnings on the Result.
package site
