// Package azure provides a minimal client for the Azure Resource Manager IP group API.
//
// Only the two calls the updater needs are implemented: reading an IP group
// and replacing it. Replacement always sends the tags and location exactly as
// they were read, so metadata managed elsewhere survives an address update.
//
// # Example Usage
//
//	client := azure.NewClient("https://management.azure.com", "2022-01-01", httpClient)
//	id := azure.ResourceID{SubscriptionID: sub, ResourceGroup: "rg", Name: "frontdoor"}
//
//	group, err := client.GetIPGroup(ctx, token, id)
//	if err != nil {
//	    return err
//	}
//	group.Properties.IPAddresses = prefixes
//	_, err = client.PutIPGroup(ctx, token, id, group)
package azure
