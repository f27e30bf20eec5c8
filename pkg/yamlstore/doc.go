// Package yamlstore provides a read-only gotenant.Store loaded from a YAML
// document, for small deployments and test fixtures where role data lives in
// a config file rather than a database.
//
// # Document shape
//
//	tenants:
//	  acme:
//	    active: true
//	    principals:
//	      alice:
//	        active: true
//	        roles: [editor]
//	    roles:
//	      editor:
//	        permissions: [invoice:read, invoice:write]
//	        inherits: [viewer]
//	      viewer:
//	        permissions: [invoice:read]
//	global_roles:
//	  support:
//	    permissions: [ticket:read]
//	    principals: [alice]
//
// Every identifier and permission is validated at load time with the
// gotenant constructors, so a store that parses cleanly never feeds the
// engine malformed data. The loaded store is immutable and safe for
// concurrent use.
package yamlstore
