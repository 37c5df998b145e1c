package sqlinline

const QListDonationCenters = `--sql 406baedc-0223-4d3b-b87c-6bee23444ed4
select center_id, name, address
from donation_center
order by name asc, center_id asc;
`

const QInsertDonationCenter = `--sql 49e31dcc-daf8-452b-8492-8bb05a760075
insert into donation_center(name, address)
values ($1::text, $2::text)
returning center_id;
`
