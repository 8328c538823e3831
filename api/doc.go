// Package api groups the TikHub endpoint packages, one per platform and
// upstream surface (for example api/tiktok/appv3 or api/douyin/web).
//
// Every endpoint is a package-level client.Endpoint value. Query parameters
// are described by a params struct: required parameters are plain fields,
// optional ones are optional.Value fields and are omitted from the request
// unless set. Constructors named New*Params fill in the documented defaults.
//
//	p := appv3.NewFetchUserPostVideosParams("MS4wLjABAAAA...")
//	p.Count = optional.Of(10)
//	res, err := appv3.FetchUserPostVideos.Do(ctx, c, p)
//
// The catalog package lists every endpoint declared here.
package api
