// Package images fetches the list of candidate tile images.
//
// The provider is any HTTP endpoint answering GET with a JSON array of
// objects that carry at least a "url" field, such as
// https://jsonplaceholder.typicode.com/photos or the /api/images route of
// `tileboard serve`. [Client.RandomImage] picks one entry uniformly at random.
//
// Responses are cached through a [cache.Cache] under [cache.HTTPKey]. Failed
// requests are not retried: the editor treats a failed fetch as "no new tile"
// and the user can simply ask again.
package images
