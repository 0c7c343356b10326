// Package registry provides lookup clients for the plugin registries that
// plugmanager can resolve installed jars against.
//
// Two registries are supported:
//
//   - Spiget: the public API in front of the SpigotMC resource marketplace.
//     Resources are addressed by numeric id.
//   - Modrinth: a project registry addressed by project id or slug. Only
//     projects that run on the server and ship a Bukkit, Spigot or Paper
//     loader are considered.
//
// Both implement the Client interface so the identity matcher, the update
// checker and the downloader can treat them interchangeably, and so tests can
// substitute the generated mocks in the mocks subpackage.
//
// # Failure semantics
//
// Client methods never return errors. A network failure, a non-2xx status or
// a malformed payload is logged at debug level and reported as an empty
// result. Every call is a single attempt; pacing between calls is the job of
// the underlying httpclient.
//
// # Repository URLs
//
// Every resolved plugin stores the public page of its project. Clients claim
// ownership of such URLs by substring, which is how a stored record finds its
// way back to the registry it came from:
//
//	client, ok := set.ForURL("https://www.spigotmc.org/resources/13932/")
//	latest := client.LatestVersion(ctx, "13932")
package registry
