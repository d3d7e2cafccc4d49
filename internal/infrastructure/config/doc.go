/*
Package config loads server settings from the environment.

Every field has an envconfig tag and a default, so an empty environment
yields a working server that stores projects under ./projects.
*/
package config
