// Package workspace manages the generator's private directory inside a
// source folder. Generated pages live in .moss/site, which is removed and
// recreated on every run; the build report sits next to it in .moss.
package workspace
