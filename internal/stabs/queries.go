package stabs

// SPARQL query templates against the rico ontology of the archive portal.
// The %s placeholders take record URIs.

const seriesQueryTmpl = `
PREFIX rico: <https://www.ica.org/standards/RiC/ontology#>
SELECT ?link ?identifier ?title
WHERE {
    {
    ?link rico:identifier ?identifier ;
    rico:title ?title ;
    rico:type "Akte"@ger ;
    rico:isDirectlyIncludedIn <%s> .
    }
}
`

const dossiersQueryTmpl = `
PREFIX rico: <https://www.ica.org/standards/RiC/ontology#>
PREFIX stabs-rico: <https://ld.bs.ch/ontologies/StABS-RiC/>
SELECT ?link ?identifier ?title ?note ?housenamebs ?oldhousenumber ?owner1862
WHERE {
    {
    ?link rico:identifier ?identifier ;
    rico:title ?title ;
    rico:type "Akte"@ger ;
    rico:isDirectlyIncludedIn <%s> .
    }
    OPTIONAL {?link rico:generalDescription ?note .}
    OPTIONAL {?link stabs-rico:houseNameBS ?housenamebs .}
    OPTIONAL {?link stabs-rico:oldHousenumber ?oldhousenumber .}
    OPTIONAL {?link stabs-rico:owner1862 ?owner1862 .}
}
`

const documentsQueryTmpl = `
PREFIX rico: <https://www.ica.org/standards/RiC/ontology#>
SELECT ?link ?identifier ?title ?type ?descriptivenote ?isassociatedwithdate
WHERE {
    {
    ?link rico:identifier ?identifier ;
    rico:title ?title ;
    rico:type ?type ;
    rico:isIncludedInTransitive <%s> .
    }
    OPTIONAL {?link rico:generalDescription ?descriptivenote .}
    OPTIONAL {?link rico:isAssociatedWithDate ?isassociatedwithdate .}
}
`
