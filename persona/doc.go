// Package persona holds the process-wide persona registry.
//
// Registry model:
//   - Built-in personas are defined in code and keep their definition order.
//   - An optional YAML overlay can add personas or replace built-in prompts.
//   - The registry is read-only after construction; no teardown needed.
package persona
