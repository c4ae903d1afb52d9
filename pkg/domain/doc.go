// Package domain parses request hostnames into the structured form the
// tenant resolver keys on.
//
// A host is addressed either as a subdomain of the platform's own domain
// ("resto.tablekit.app") or as a tenant-owned custom domain
// ("pizza-palace.com"). Parse normalizes the input so that equivalent
// hostnames always yield identical Info values, which downstream cache keys
// rely on.
//
//	info, err := domain.Parse(r.Host, domain.Config{PlatformDomain: "tablekit.app"})
//	if err != nil {
//		// malformed host, platform apex, or forbidden loopback
//	}
//	if info.IsCustomDomain {
//		// look up tenant by info.Domain
//	} else {
//		// look up tenant by info.Subdomain
//	}
//
// Loopback hosts are only accepted when Config.AllowLocalhost is set;
// production deployments reject them with ErrLocalhostNotAllowed.
package domain
