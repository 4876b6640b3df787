// Package config loads and validates moderator configuration data.
//
// Configuration is read once at startup from a YAML file, defaulted, and
// validated in a fixed order with a distinct error per missing concern so
// operators can diagnose a broken file from the first failure alone. Mailer
// credentials may be sentinel values that defer to environment variables;
// those are resolved every time they are read, never cached, so credential
// rotation in the environment is observed by later sends.
package config
