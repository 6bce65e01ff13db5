// Package pack implements the content-addressed pack build core: lazily
// produced resources are materialized by one of three generators (directory
// sync, compressed archive, in-memory only), and every finished build
// carries a definitive answer to "did anything actually change?" so callers
// can skip downstream work.
package pack
