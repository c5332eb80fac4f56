// Package lists retrieves and vets the vendor-published address prefix list.
//
// The package covers three steps of a run:
//
//   - Downloader.FetchPrefixes follows the vendor download page to the JSON
//     document and extracts the prefixes of one named section
//   - Classify splits raw prefix strings into IPv4 and IPv6 buckets, dropping
//     anything that is not a network address with a warning
//   - ValidateV4Count refuses lists whose IPv4 part is suspiciously small
//
// # Example Usage
//
//	d := lists.NewDownloader(lists.Options{
//	    PageURL:   cfg.Source.PageURL,
//	    SectionID: cfg.Source.SectionID,
//	    UserAgent: cfg.Source.UserAgent,
//	})
//	raw, err := d.FetchPrefixes(ctx)
//	if err != nil {
//	    return err
//	}
//	set := lists.Classify(raw)
//	if err := lists.ValidateV4Count(set, cfg.Safety.MinimumAcceptableV4Networks); err != nil {
//	    return err
//	}
//
// There is no partial success: any failure while fetching returns an
// *errors.Error with code SOURCE_ERROR and no prefixes.
package lists
